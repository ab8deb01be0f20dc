package handlers

// CreateLinkRequest is the request for creating a link.
type CreateLinkRequest struct {
	Body struct {
		Destination string `doc:"Absolute URL the link redirects to" example:"https://example.com"      json:"destination"`
		TTLSeconds  *int64 `doc:"Seconds until the link expires; defaults to 86400 when omitted" example:"86400" json:"ttlSeconds,omitempty"`
	}
}

// CreateLinkResponse is the response for a successfully created link. This
// is the only response that ever carries the secret key.
type CreateLinkResponse struct {
	Body struct {
		Identifier  string `doc:"Public short identifier"                   example:"2h7gk3wq" json:"identifier"`
		SecretKey   string `doc:"Credential required to update or delete"   json:"secretKey"`
		Destination string `doc:"Destination URL"                           json:"destination"`
		ExpiresAt   int64  `doc:"Expiration time, milliseconds since epoch" json:"expiresAt"`
	}
}

// RedirectRequest is the request for resolving a link.
type RedirectRequest struct {
	Identifier string `doc:"The short identifier" example:"2h7gk3wq" path:"identifier"`
}

// RedirectResponse redirects to the link's destination.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"Destination URL" header:"Location"`
	}
}

// UpdateLinkRequest is the request for updating a link's destination and expiry.
type UpdateLinkRequest struct {
	Identifier string `doc:"The short identifier" example:"2h7gk3wq" path:"identifier"`
	Body       struct {
		Key         string `doc:"The link's secret key"                                          json:"key"`
		Destination string `doc:"New destination URL"                                            json:"destination"`
		TTLSeconds  *int64 `doc:"Seconds until the link expires; defaults to 86400 when omitted" json:"ttlSeconds,omitempty"`
	}
}

// UpdateLinkResponse is the updated record, without the secret key.
type UpdateLinkResponse struct {
	Body struct {
		Identifier  string `json:"identifier"`
		Destination string `json:"destination"`
		ExpiresAt   int64  `doc:"Expiration time, milliseconds since epoch" json:"expiresAt"`
	}
}

// DeleteLinkRequest is the request for deleting a link.
type DeleteLinkRequest struct {
	Identifier string `doc:"The short identifier"  example:"2h7gk3wq" path:"identifier"`
	Key        string `doc:"The link's secret key" query:"key"`
}

// DeleteLinkResponse acknowledges a delete. Deletes are idempotent: the
// response is the same whether or not the link existed.
type DeleteLinkResponse struct {
	Body struct {
		Identifier string `json:"identifier"`
	}
}
