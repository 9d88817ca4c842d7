package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ytautomation/config"
	"ytautomation/logging"
	"ytautomation/renderer"
	"ytautomation/storage"
	"ytautomation/video"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputDir string
	noArchive bool

	env    config.Env
	logger *zap.Logger
)

// rootCmd renders text clips outside the web UI
var rootCmd = &cobra.Command{
	Use:   "render",
	Short: "Render text clips to video files",
	Long: `Render text-on-background clips with ffmpeg.

Available subcommands:
  file  - Render a single JSON or YAML job file
  batch - Render every job file in a directory
  kafka - Consume render jobs from Kafka`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env = config.Load()
		l, err := logging.New(env.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		if outputDir == "" {
			outputDir = env.OutputDir
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var fileCmd = &cobra.Command{
	Use:   "file <job>",
	Short: "Render a single job file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proc, err := newProcessor(cmd.Context())
		if err != nil {
			return err
		}
		res, err := proc.ProcessFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if res.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already archived\n", res.ID)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Path)
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Render every *.json, *.yaml and *.yml job in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proc, err := newProcessor(cmd.Context())
		if err != nil {
			return err
		}
		summary, err := proc.ProcessFromDirectory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rendered %d, skipped %d, failed %d of %d\n",
			summary.Rendered, summary.Skipped, summary.Failed, summary.Total)
		if summary.Failed > 0 {
			return fmt.Errorf("%d jobs failed", summary.Failed)
		}
		return nil
	},
}

var kafkaCmd = &cobra.Command{
	Use:   "kafka",
	Short: "Consume render jobs from Kafka until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proc, err := newProcessor(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("Running in Kafka consumer mode",
			zap.Strings("brokers", env.KafkaBrokers),
			zap.String("topic", env.KafkaTopic),
			zap.String("group", env.KafkaGroupID))

		return renderer.RunConsumer(cmd.Context(), renderer.ConsumerConfig{
			Brokers:   env.KafkaBrokers,
			Topic:     env.KafkaTopic,
			GroupID:   env.KafkaGroupID,
			Processor: proc,
			Logger:    logger,
		})
	},
}

func newProcessor(ctx context.Context) (*renderer.Processor, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var archive *storage.Archive
	if !noArchive {
		a, err := storage.NewArchiveFromEnv(ctx, env, logger)
		if err != nil {
			return nil, err
		}
		archive = a
	}

	return renderer.NewProcessor(video.NewRenderer(logger), archive, outputDir, logger), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: $OUTPUT_DIR)")
	rootCmd.PersistentFlags().BoolVar(&noArchive, "no-archive", false, "Skip the S3 archive even when S3_BUCKET is set")

	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(kafkaCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
