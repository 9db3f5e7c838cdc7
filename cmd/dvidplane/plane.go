package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/janelia-flyem/dvidplane/datatype/pixels"
	"github.com/janelia-flyem/dvidplane/dvid"
	"github.com/janelia-flyem/dvidplane/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var extractCmd = &cobra.Command{
	Use:   "extract <id>",
	Short: "Print the pixel values of one plane",
	Long: `Prints one XY, XZ, or ZY plane of a stored pixel set.  The --index flag gives the
fixed coordinate: z for XY, y for XZ, and x for ZY.  Text output has one row per
second plane-local axis (Y for XY and ZY, Z for XZ).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := planeRequest(viper.GetString("extract.shape"), int32(viper.GetInt("extract.index")),
			int32(viper.GetInt("extract.channel")), int32(viper.GetInt("extract.time")))
		if err != nil {
			return err
		}
		return withService(cmd, func(ctx context.Context, s *server.Service) error {
			plane, err := s.ExtractPlane(ctx, args[0], req)
			if err != nil {
				return err
			}
			if viper.GetBool("extract.json") {
				return writePlaneJSON(cmd.OutOrStdout(), plane)
			}
			return writePlane(cmd.OutOrStdout(), plane)
		})
	},
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults <id>...",
	Short: "Print rendering defaults for pixel sets as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, s *server.Service) error {
			all, err := s.DefaultsAll(ctx, args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if len(all) == 1 {
				return enc.Encode(all[0])
			}
			return enc.Encode(all)
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <id>",
	Short: "Compute per-channel intensity statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, s *server.Service) error {
			stats, err := s.Stats(ctx, args[0], viper.GetBool("stats.update"))
			if err != nil {
				return err
			}
			for _, st := range stats {
				fmt.Fprintln(cmd.OutOrStdout(), st)
			}
			return nil
		})
	},
}

func init() {
	extractCmd.Flags().String("shape", "xy", "plane orientation: xy|xz|zy")
	extractCmd.Flags().Int32("index", 0, "fixed coordinate of the plane")
	extractCmd.Flags().Int32P("channel", "c", 0, "channel")
	extractCmd.Flags().Int32P("time", "t", 0, "timepoint")
	extractCmd.Flags().Bool("json", false, "print the plane as JSON")
	viper.BindPFlag("extract.shape", extractCmd.Flags().Lookup("shape"))
	viper.BindPFlag("extract.index", extractCmd.Flags().Lookup("index"))
	viper.BindPFlag("extract.channel", extractCmd.Flags().Lookup("channel"))
	viper.BindPFlag("extract.time", extractCmd.Flags().Lookup("time"))
	viper.BindPFlag("extract.json", extractCmd.Flags().Lookup("json"))

	statsCmd.Flags().Bool("update", false, "store the computed statistics with the pixel set")
	viper.BindPFlag("stats.update", statsCmd.Flags().Lookup("update"))

	rootCmd.AddCommand(extractCmd, defaultsCmd, statsCmd)
}

// planeRequest builds a request from an orientation string and the plane's fixed
// coordinate.
func planeRequest(shape string, index, c, t int32) (pixels.PlaneRequest, error) {
	o, err := dvid.OrientationString(shape).Orientation()
	if err != nil {
		return pixels.PlaneRequest{}, err
	}
	switch o {
	case dvid.XY:
		return pixels.XYRequest(index, c, t), nil
	case dvid.XZ:
		return pixels.XZRequest(index, c, t), nil
	default:
		return pixels.ZYRequest(index, c, t), nil
	}
}

func writePlane(w io.Writer, plane *pixels.Plane) error {
	size1, _ := plane.Size()
	values := plane.Values()
	var sb strings.Builder
	for i, v := range values {
		if i%int(size1) != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		if i%int(size1) == int(size1)-1 {
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

type planeJSON struct {
	Shape     dvid.Orientation `json:"shape"`
	PixelType dvid.PixelType   `json:"pixel_type"`
	Width     int32            `json:"width"`
	Height    int32            `json:"height"`
	Values    []float64        `json:"values"`
}

func writePlaneJSON(w io.Writer, plane *pixels.Plane) error {
	size1, size2 := plane.Size()
	return json.NewEncoder(w).Encode(planeJSON{
		Shape:     plane.Shape(),
		PixelType: plane.PixelType(),
		Width:     size1,
		Height:    size2,
		Values:    plane.Values(),
	})
}
