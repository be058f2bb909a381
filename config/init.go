package config

import (
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Components are the external connections the server needs
type Components struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
}

// InitApp builds the router, the websocket hub and a scheduler running in
// the configured zone
func InitApp(cfg *Config) (*gin.Engine, *melody.Melody, *cron.Cron) {
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Session-ID")
	configCors.AddExposeHeaders("X-Session-ID")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	m := melody.New()

	c := cron.New(cron.WithLocation(cfg.Location()))

	return router, m, c
}

// InitComponents connects to postgres, Redis and Cloudinary
func InitComponents(cfg *Config) (*Components, error) {
	db, err := ConnectDB(cfg)
	if err != nil {
		return nil, err
	}

	cld, err := ConnectCloudinary(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %v", err)
	}

	rdb, err := ConnectRedis(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("All components initialized successfully")
	return &Components{DB: db, Redis: rdb, Cloudinary: cld}, nil
}

func InitWebSocket(router *gin.Engine, m *melody.Melody) {
	router.GET("/ws", func(c *gin.Context) {
		m.HandleRequest(c.Writer, c.Request)
	})
	log.Println("WebSocket initialized successfully")
}
