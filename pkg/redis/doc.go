// Package redis connects guardkit services to an optional Redis server.
//
// Redis backs the shared CSRF token store when a service runs more than one
// replica. Without REDIS_URL the services keep tokens in memory.
//
//	if cfg.Redis.Enabled() {
//		client, err := redis.Connect(ctx, cfg.Redis)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//		store := csrf.NewRedisStore(client)
//	}
//
// Healthcheck adapts the client to an httpserver readiness check.
package redis
