package main

import (
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/config"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/logger"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/routes"
	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/utils"
)

func main() {
	logger.Init()
	defer logger.Sync()

	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	r := routes.SetupRouter(config.DB)
	if err := r.Run(":8080"); err != nil {
		logger.L().Fatalw("server exited", "err", err)
	}
}
