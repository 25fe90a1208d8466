package cli

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdilab/imageclassifier/internal/classifier"
	"github.com/mdilab/imageclassifier/internal/config"
	"github.com/mdilab/imageclassifier/internal/engine"
	"github.com/mdilab/imageclassifier/internal/logging"
	"github.com/mdilab/imageclassifier/internal/preprocess"
	"github.com/mdilab/imageclassifier/internal/ranker"
)

var (
	cfgFile       string
	modelPath     string
	labelsPath    string
	topK          int
	normalization string
	ortLibrary    string
	async         bool
	verbose       bool

	rootCmd = &cobra.Command{
		Use:   "classify [image]",
		Short: "Classify a single image with an ONNX model",
		Long: `Loads an ONNX classification model, preprocesses the given JPEG or PNG
image to the model's declared input shape and prints the top-K classes with
inference diagnostics.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
		// Errors are printed by main; cobra's own echo would double them.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./classify.yaml)")
	flags.StringVarP(&modelPath, "model", "m", "", "path to the ONNX model file")
	flags.StringVarP(&labelsPath, "labels", "l", "", "path to a labels file, one label per line")
	flags.IntVarP(&topK, "top-k", "k", 0, "number of classes to report")
	flags.StringVar(&normalization, "normalization", "", "override normalization profile: imagenet, symmetric or unit")
	flags.StringVar(&ortLibrary, "ort-lib", "", "path to the onnxruntime shared library")
	flags.BoolVar(&async, "async", false, "submit through the async queue instead of the blocking call")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	overlayFlags(cmd, cfg)

	if cfg.ModelPath == "" {
		return fmt.Errorf("no model specified: use --model or a config file")
	}

	logger, err := logging.NewLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	img, err := decodeImage(args[0])
	if err != nil {
		return err
	}

	rt, err := engine.NewRuntime(cfg.OnnxLibraryPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := []classifier.Option{classifier.WithLogger(logger)}
	if cfg.Normalization != "" {
		profile, ok := preprocess.ProfileByName(cfg.Normalization)
		if !ok {
			return fmt.Errorf("unknown normalization profile %q", cfg.Normalization)
		}
		opts = append(opts, classifier.WithProfile(profile))
	}

	cls, err := classifier.Open(rt, cfg.ModelPath, cfg.LabelsPath, opts...)
	if err != nil {
		return err
	}
	defer cls.Close()

	logger.Info("classifying image",
		zap.String("image", args[0]),
		zap.Int("top_k", cfg.TopK),
		zap.Bool("async", async))

	result, err := classify(cls, img, cfg.TopK)
	if err != nil {
		return err
	}

	for i, s := range result.Scores {
		fmt.Printf("%2d. %-40s %.4f\n", i+1, s.Label, s.Score)
	}
	fmt.Println(result.Diagnostics)
	return nil
}

func classify(cls *classifier.Classifier, img image.Image, topK int) (ranker.RankedResult, error) {
	if async {
		o := <-cls.ClassifyAsync(img, topK)
		return o.Result, o.Err
	}
	return cls.Classify(img, topK)
}

func overlayFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("model") {
		cfg.ModelPath = modelPath
	}
	if cmd.Flags().Changed("labels") {
		cfg.LabelsPath = labelsPath
	}
	if cmd.Flags().Changed("top-k") {
		cfg.TopK = topK
	}
	if cmd.Flags().Changed("normalization") {
		cfg.Normalization = normalization
	}
	if cmd.Flags().Changed("ort-lib") {
		cfg.OnnxLibraryPath = ortLibrary
	}
	if verbose {
		cfg.Verbose = true
	}
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
