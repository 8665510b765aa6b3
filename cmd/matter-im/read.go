package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/backkem/matter-im/pkg/clusters/onoff"
	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/matter"
	"github.com/pion/logging"
	"github.com/spf13/cobra"
)

type readFlags struct {
	paths      []string
	lights     int
	toggle     []uint
	maxPayload int
}

func newReadCmd(root *rootFlags) *cobra.Command {
	flags := &readFlags{}

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read attributes from a demo device",
		Long: `Build an in-process device with On/Off Light endpoints 1..N, optionally
toggle some of them, then serve a ReadRequest for the given paths. Paths are
endpoint/cluster/attribute with '*' for a wildcard, e.g. '*/0x0006/0'.
Every ReportData chunk is acknowledged and printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := root.loggerFactory()
			if err != nil {
				return err
			}
			dev, err := newDemoDevice(flags.lights, flags.maxPayload, lf)
			if err != nil {
				return err
			}
			return runRead(cmd.Context(), cmd.OutOrStdout(), dev, flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.paths, "path", []string{"*/*/*"}, "Attribute path, repeatable")
	cmd.Flags().IntVar(&flags.lights, "lights", 2, "Number of On/Off Light endpoints")
	cmd.Flags().UintSliceVar(&flags.toggle, "toggle", nil, "Endpoints to toggle before reading")
	cmd.Flags().IntVar(&flags.maxPayload, "max-payload", im.DefaultMaxPayload, "Maximum IM payload per chunk")

	return cmd
}

func runRead(ctx context.Context, w io.Writer, dev *matter.Device, flags *readFlags) error {
	req := &message.ReadRequestMessage{}
	for _, s := range flags.paths {
		p, err := parseAttributePath(s)
		if err != nil {
			return err
		}
		req.AttributeRequests = append(req.AttributeRequests, p)
	}

	x := dev.Engine().NewExchange()
	defer x.Close()

	for _, ep := range flags.toggle {
		toggle := &message.InvokeRequestMessage{
			InvokeRequests: []message.CommandDataIB{{Path: message.NewCommandPath(message.EndpointID(ep), onoff.ClusterID, onoff.CmdToggle)}},
		}
		out, err := exchange(ctx, x, toggle)
		if err != nil {
			return err
		}
		if err := writeYAML(w, out.Opcode, out.Message); err != nil {
			return err
		}
	}

	out, err := exchange(ctx, x, req)
	for err == nil && out != nil {
		if err = writeYAML(w, out.Opcode, out.Message); err != nil {
			break
		}
		if x.Pending() == 0 {
			break
		}
		out, err = exchange(ctx, x, &message.StatusResponseMessage{Status: message.StatusSuccess})
	}
	return err
}

// exchange encodes m and hands it to x as if received from a peer.
func exchange(ctx context.Context, x *im.Exchange, m message.Message) (*im.Outbound, error) {
	payload, err := message.EncodeMessage(m)
	if err != nil {
		return nil, err
	}
	return x.HandleMessage(ctx, m.Opcode(), payload)
}

func newDemoDevice(lights, maxPayload int, lf logging.LoggerFactory) (*matter.Device, error) {
	dev, err := matter.NewDevice(matter.DeviceConfig{MaxPayload: maxPayload, LoggerFactory: lf})
	if err != nil {
		return nil, err
	}
	for i := 1; i <= lights; i++ {
		if err := dev.AddEndpoint(matter.NewOnOffLight(datamodel.EndpointID(i), matter.LightConfig{LoggerFactory: lf})); err != nil {
			return nil, err
		}
	}
	return dev, nil
}

// parseAttributePath parses endpoint/cluster/attribute. Each component is
// a number in any base strconv accepts, or '*'.
func parseAttributePath(s string) (message.AttributePathIB, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return message.AttributePathIB{}, fmt.Errorf("path %q: want endpoint/cluster/attribute", s)
	}

	var p message.AttributePathIB
	ep, err := pathComponent(parts[0], 16)
	if err != nil {
		return p, fmt.Errorf("path %q endpoint: %w", s, err)
	}
	cl, err := pathComponent(parts[1], 32)
	if err != nil {
		return p, fmt.Errorf("path %q cluster: %w", s, err)
	}
	attr, err := pathComponent(parts[2], 16)
	if err != nil {
		return p, fmt.Errorf("path %q attribute: %w", s, err)
	}

	if ep != nil {
		p.Endpoint = message.Ptr(message.EndpointID(*ep))
	}
	if cl != nil {
		p.Cluster = message.Ptr(message.ClusterID(*cl))
	}
	if attr != nil {
		p.Attribute = message.Ptr(message.AttributeID(*attr))
	}
	return p, nil
}

func pathComponent(s string, bits int) (*uint64, error) {
	if s == "*" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
