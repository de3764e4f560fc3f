package cmd

import (
	"attendance/attendance"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var enrollCmd = &cobra.Command{
	Use:   "enroll <dir>",
	Short: "Enroll every photo of a directory",
	Long: `Enroll the largest face of every photo in a directory. The person's name is
the file name up to the first dot, so several photos of the same person can be
named ali.1.jpg, ali.2.jpg...

Examples:
  attendance enroll ./people
  attendance enroll --detector cnn ./people`,
	Args: cobra.ExactArgs(1),
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		result = append(result, filepath.Join(dir, e.Name()))
	}
	return result, nil
}

func runEnroll(cmd *cobra.Command, args []string) error {
	paths, err := listImages(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No images found")
		return nil
	}
	c, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer c.Close()

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Enrolling"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)
	var enrolled, noFace int
	failed := map[string]error{}
	for _, path := range paths {
		img, err := os.ReadFile(path)
		if err == nil {
			var result attendance.Result
			result, err = c.service.Enroll(attendance.LabelOf(path), img)
			if err == nil && result.Message == attendance.NoFace {
				noFace++
			} else if err == nil {
				enrolled++
			}
		}
		if err != nil {
			failed[path] = err
		}
		_ = bar.Add(1)
	}
	fmt.Printf("\n\nEnrolled: %d, no face: %d, failed: %d\n", enrolled, noFace, len(failed))
	for path, err := range failed {
		fmt.Printf("  %s: %v\n", path, err)
	}
	return nil
}
