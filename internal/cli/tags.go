package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/llehouerou/empress/internal/engine"
	"github.com/llehouerou/empress/internal/errmsg"
	"github.com/llehouerou/empress/internal/host"
	"github.com/llehouerou/empress/internal/metadata"
)

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags FILE...",
		Short: "Show the tags and bus metadata of audio files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			for i, path := range args {
				if err := printTags(cmd.OutOrStdout(), fs, engine.Track(i+1), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printTags(w io.Writer, fs afero.Fs, track engine.Track, path string) error {
	st, err := fs.Stat(path)
	if err != nil {
		return errmsg.Wrap(errmsg.OpFileStat, err)
	}
	head, err := host.ReadTags(path)
	if head == nil {
		return fmt.Errorf("%s", errmsg.FormatWith(errmsg.OpTagsRead, path, err))
	}

	fmt.Fprintf(w, "%s (%s)\n", path, humanize.Bytes(uint64(st.Size())))
	if err != nil {
		fmt.Fprintf(w, "  warning: %v\n", err)
	}

	var tags []engine.Tag
	for r := head; r != nil; r = r.Next {
		fmt.Fprintf(w, "  %s: %s\n", r.Key, r.Value)
		tags = append(tags, engine.Tag{Key: r.Key, Value: r.Value})
	}

	md := metadata.Extract(track, tags, metadata.NewArtProbe(fs))
	fmt.Fprintln(w, "metadata:")
	for _, key := range slices.Sorted(maps.Keys(md)) {
		fmt.Fprintf(w, "  %s: %v\n", key, md[key].Value())
	}
	return nil
}
