package config

type RedisConfig struct {
	DB       int
	Url      string
	Password string
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:       intEnv("REDIS_DB", 0),
		Url:      strEnv("REDIS_ADDR", "localhost:6379"),
		Password: strEnv("REDIS_PASSWORD", ""),
	}
}
