// Package config loads the service configuration with Viper.
//
// Values come from config.yaml (explicit path, or ".", "/etc/posts",
// "$HOME/.posts"), then POSTS_* environment variables, then built-in
// defaults:
//
//	cfg, err := config.LoadConfig("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Addr())
//
// Environment keys replace dots with underscores, for example
// POSTS_DATA_STORE=sqlite or POSTS_SERVER_PORT=9090.
//
// Watch re-reads the file on change:
//
//	config.Watch(cfg, func(next *config.Config) {
//	    logger.StdLogger().SetLevel(logrus.Level(next.Logger.Level))
//	})
package config
