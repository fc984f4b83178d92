package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/service"
	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:     "gallery",
	Short:   "Share photos and videos",
	GroupID: "planning",
}

var galleryListCmd = &cobra.Command{
	Use:   "list <event-id>",
	Short: "List gallery items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		items := page.Gallery.Items()
		if jsonOutput {
			printJSON(items)
			return nil
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "ID\tTYPE\tCAPTION\tURL")
		for _, m := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.MediaType, truncate(m.Caption, 30), m.URL)
		}
		return tw.Flush()
	},
}

var galleryUploadCmd = &cobra.Command{
	Use:   "upload <event-id> <file>...",
	Short: "Upload files to the gallery",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		caption, _ := cmd.Flags().GetString("caption")
		for _, path := range args[1:] {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			m, err := page.Gallery.Upload(cmd.Context(), filepath.Base(path), f, caption)
			f.Close()
			if err != nil {
				return fmt.Errorf("uploading %s: %w", path, err)
			}
			if jsonOutput {
				printJSON(m)
			}
		}
		return nil
	},
}

var galleryFilesCmd = &cobra.Command{
	Use:   "files <event-id>",
	Short: "List stored files in the event's asset folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		folder := assetFolder(cmd, args[0])
		assets, err := svc.ListAssets(cmd.Context(), folder)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(assets)
			return nil
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "NAME\tSIZE\tPATH")
		for _, a := range assets {
			size := fmt.Sprint(a.Size)
			if a.IsFolder {
				size = "dir"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", truncate(a.Name, 40), size, a.Path)
		}
		return tw.Flush()
	},
}

var galleryRmFileCmd = &cobra.Command{
	Use:   "rm-file <path>...",
	Short: "Delete stored files by asset path",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		for _, p := range args {
			if err := svc.DeleteAsset(cmd.Context(), p); err != nil {
				return fmt.Errorf("deleting %s: %w", p, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", p)
		}
		return nil
	},
}

var galleryMkdirCmd = &cobra.Command{
	Use:   "mkdir <event-id> <name>",
	Short: "Create a folder in the event's asset folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireUser(); err != nil {
			return err
		}
		parent := assetFolder(cmd, args[0])
		if err := svc.CreateAssetFolder(cmd.Context(), parent, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created folder %s/%s\n", parent, args[1])
		return nil
	},
}

// assetFolder returns --folder when given, otherwise the event's gallery folder.
func assetFolder(cmd *cobra.Command, eventID string) string {
	if f, _ := cmd.Flags().GetString("folder"); f != "" {
		return f
	}
	return service.GalleryFolder(eventID)
}

func init() {
	galleryUploadCmd.Flags().String("caption", "", "caption for every uploaded file")
	galleryFilesCmd.Flags().String("folder", "", "asset folder (default: the event's gallery)")
	galleryMkdirCmd.Flags().String("folder", "", "parent folder (default: the event's gallery)")

	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryUploadCmd)
	galleryCmd.AddCommand(galleryFilesCmd)
	galleryCmd.AddCommand(galleryRmFileCmd)
	galleryCmd.AddCommand(galleryMkdirCmd)
}
