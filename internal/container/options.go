package container

// Options is the humacli configuration surface for both binaries.
type Options struct {
	Port        int    `default:"8888"           help:"Port to listen on"                                                     short:"p"`
	RedisAddr   string `default:"localhost:6379" help:"Redis server address"                                                  short:"r"`
	ShardCount  int    `default:"3"              help:"Number of authoritative link shards"                                   short:"s"`
	PostgresDSN string `default:""               help:"Comma-separated postgres DSNs, one per shard; empty runs in-memory"`
	LogFormat   string `default:"console"        help:"Log format: console or json"`
}
