package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fiofaker/pkg/render"
	"fiofaker/pkg/s3"
	"fiofaker/services/snapshot"
)

func newSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fixture snapshot archive operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newSnapshotWriteCommand())
	cmd.AddCommand(newSnapshotVerifyCommand())
	return cmd
}

func newSnapshotWriteCommand() *cobra.Command {
	var (
		output     string
		entities   []string
		params     snapshot.Params
		bucket     string
		key        string
		presignTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write generated fixtures to a tar.zst archive, optionally uploading it",
	}
	generator := seedFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		engine, err := render.New()
		if err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
		gen, seed := generator()

		if _, err := snapshot.Write(ctx, snapshot.Config{
			Output:    output,
			Generator: gen,
			Renderer:  engine,
			Params:    params,
			Entities:  entities,
			Seed:      seed,
			Stdout:    cmd.OutOrStdout(),
		}); err != nil {
			return err
		}
		if bucket == "" {
			return nil
		}

		client, err := s3.NewClient(ctx, s3.OptionsFromEnv())
		if err != nil {
			return fmt.Errorf("s3 client: %w", err)
		}
		url, err := snapshot.Upload(ctx, snapshot.UploadConfig{
			Path:       output,
			Bucket:     bucket,
			Key:        key,
			Store:      client,
			PresignTTL: presignTTL,
			Stdout:     cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		if url != "" {
			fmt.Fprintln(cmd.OutOrStdout(), url)
		}
		return nil
	}

	cmd.Flags().StringVar(&output, "output", "", "Destination archive file (tar.zst)")
	cmd.Flags().StringSliceVar(&entities, "entities", nil, "Entities to include (default all)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Upload the archive to this S3 bucket")
	cmd.Flags().StringVar(&key, "key", "", "Object key (default archive file name)")
	cmd.Flags().DurationVar(&presignTTL, "presign-ttl", 0, "Print a presigned download URL valid for this long")
	paramFlags(cmd, &params)
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newSnapshotVerifyCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every file of an archive against its manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := snapshot.Open(cmd.Context(), file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range archive.Manifest.Files {
				fmt.Fprintf(out, "%s\t%s\t%d\t%s\n", f.Path, f.Entity, f.Size, f.SHA256)
			}
			fmt.Fprintf(out, "ok: %d files, project %s, created %s\n",
				len(archive.Manifest.Files), archive.Manifest.Project, archive.Manifest.CreatedAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the snapshot tar.zst")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
