package main

import (
	"flag"
	"log"

	"rental_coach_backend/internal/app"
	"rental_coach_backend/internal/config"
	"rental_coach_backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件所在目录")
	envFile := flag.String("env", ".env", "启动前加载的环境变量文件，不存在时忽略")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("No env file loaded (%s): %v", *envFile, err)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
