package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/sambbaron/tuneful/storage"

	"github.com/spf13/cobra"
)

var (
	uploadsPrefix string
	uploadsStats  bool
)

var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "查看上传存储中的文件",
	Long:  `列出上传存储（本地目录或 MinIO 存储桶）中的文件，支持按前缀过滤和统计信息。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		blobs, err := storage.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open upload store: %w", err)
		}

		objects, err := blobs.List(ctx, uploadsPrefix)
		if err != nil {
			return fmt.Errorf("failed to list uploads: %w", err)
		}

		if uploadsStats {
			printUploadStats(cmd.OutOrStdout(), objects)
			return nil
		}
		return printUploads(cmd.OutOrStdout(), objects)
	},
}

func printUploads(out io.Writer, objects []storage.ObjectInfo) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED")
	for _, o := range objects {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", o.Name, o.Size, o.LastModified.Format(time.RFC3339))
	}
	return tw.Flush()
}

func printUploadStats(out io.Writer, objects []storage.ObjectInfo) {
	var total int64
	for _, o := range objects {
		total += o.Size
	}
	fmt.Fprintf(out, "Files: %d\nTotal size: %d bytes\n", len(objects), total)
}

func init() {
	rootCmd.AddCommand(uploadsCmd)

	uploadsCmd.Flags().StringVarP(&uploadsPrefix, "prefix", "p", "", "按前缀过滤文件")
	uploadsCmd.Flags().BoolVarP(&uploadsStats, "stats", "s", false, "显示文件数量和总大小")

	uploadsCmd.Example = `  # 列出所有上传文件
  tuneful uploads

  # 按前缀过滤文件
  tuneful uploads -p "demo_"

  # 显示统计信息
  tuneful uploads -s`
}
