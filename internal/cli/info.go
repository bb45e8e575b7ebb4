package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"geoview/internal/config"
	"geoview/internal/geom"
	"geoview/internal/layer"
)

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info <files...>",
		Short: "Print the layers a set of files loads into",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			root := layer.NewGroup("map")
			if err := root.Reproject(cfg.Projection); err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			for _, p := range args {
				data, err := geom.Load(p)
				if err != nil {
					return err
				}
				g := layer.FromData(filepath.Base(p), data, cfg.LabelField)
				if err := root.Adopt(layer.GroupNode(g)); err != nil {
					return err
				}
				logger.Debug("loaded", "path", p, "features", len(data.Features))
			}
			return printLayers(cmd.OutOrStdout(), root)
		},
	}
}

// printLayers writes one line per node, top first, indented by depth.
func printLayers(w io.Writer, root *layer.Group) error {
	if _, err := fmt.Fprintf(w, "projection %s\n", root.Projection()); err != nil {
		return err
	}
	for _, e := range layer.Flatten(root.Children()) {
		n := e.Node
		ext := n.Extent()
		var detail string
		switch l := n.Layer().(type) {
		case nil:
			detail = fmt.Sprintf("group (%d)", n.Group().Len())
		case *layer.FeatureLayer:
			detail = fmt.Sprintf("%s (%d)", l.GeometryType(), l.Len())
		default:
			detail = l.GeometryType().String()
		}
		_, err := fmt.Fprintf(w, "%*s%s  %s  [%.6f %.6f %.6f %.6f]\n",
			e.Depth*2, "", n.Name(), detail, ext.MinX, ext.MinY, ext.MaxX, ext.MaxY)
		if err != nil {
			return err
		}
	}
	return nil
}
