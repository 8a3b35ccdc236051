package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/d60-Lab/postwatch/pkg/database"
	"github.com/d60-Lab/postwatch/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "创建 / 更新 posts、profiles、categories 表及索引",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.InitDB(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		logger.Info("migration finished", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
