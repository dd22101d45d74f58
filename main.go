package main

import (
	"time"

	"github.com/ikapo/CBoard-API/config"
	"github.com/ikapo/CBoard-API/models"
	"github.com/ikapo/CBoard-API/routes"
	"github.com/ikapo/CBoard-API/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Wait for MySQL and migrate the id sequence, posts and comments tables
	db := config.InitDatabase(&models.ID{}, &models.Post{}, &models.Comment{})
	store := models.NewStore(db, time.Duration(cfg.DBStatementTimeoutSec)*time.Second)

	images, err := utils.NewImageStore(cfg.ImageDir)
	if err != nil {
		utils.Sugar.Fatalf("image store init failed: %v", err)
	}

	r := routes.SetupRouter(store, images)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
