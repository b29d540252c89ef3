package cmd

import (
	"github.com/sambbaron/tuneful/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动 Tuneful 服务器",
	Long:  `启动 HTTP 服务器，提供歌曲与文件上传 API 以及 Web 界面`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
