package cmd

import (
	"attendance/config"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Attendance verification with face recognition and ID card OCR",
	Long: `Attendance checks that a person is the owner of the ID card they hold up
to the camera (verification), or recognizes them among the enrolled people
(identification), and reads the ID number printed on the card.

Settings come from the environment (or a .env file), flags override them.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("detector", config.FACE_DETECTOR, "Face detector: hog or cnn")
	rootCmd.PersistentFlags().String("metric", config.FACE_METRIC, "Distance metric: cosine, euclidean or euclidean_l2")
	rootCmd.PersistentFlags().Float64("threshold", config.FACE_THRESHOLD, "Distance threshold (0 = metric default)")
	rootCmd.PersistentFlags().String("models", config.MODELS_DIR, "Directory of the dlib model files")
}
