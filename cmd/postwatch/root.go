package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/d60-Lab/postwatch/config"
	"github.com/d60-Lab/postwatch/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "postwatch",
	Short: "公众号文章 / 公众号查询服务",
	Long: `postwatch 提供公众号文章与公众号的多条件查询、分页与统计。

  postwatch serve      # 启动 HTTP 服务
  postwatch migrate    # 建表与索引`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFile(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml or ./config/config.yaml)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
