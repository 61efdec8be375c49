package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/wheelibin/lumos/internal/colour"
	"github.com/wheelibin/lumos/internal/config"
	"github.com/wheelibin/lumos/internal/gateway"
	"github.com/wheelibin/lumos/internal/lights"
	"github.com/wheelibin/lumos/internal/models"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Fatal(err)
	}
}

type options struct {
	light       string
	list        bool
	direct      bool
	on          bool
	off         bool
	brightness  int
	colour      string
	hs          bool
	hue         int
	saturation  int
	temperature int
	transition  int
}

func parseFlags(args []string) (*pflag.FlagSet, options, error) {
	o := options{}
	fs := pflag.NewFlagSet("lumosctl", pflag.ContinueOnError)
	fs.StringVarP(&o.light, "light", "l", "", "light name or instance id")
	fs.BoolVar(&o.list, "list", false, "list the lights on the gateway")
	fs.BoolVar(&o.direct, "direct", false, "send each change as its own request")
	fs.BoolVar(&o.on, "on", false, "turn the light on")
	fs.BoolVar(&o.off, "off", false, "turn the light off")
	fs.IntVarP(&o.brightness, "brightness", "b", 0, "brightness (0-254)")
	fs.StringVarP(&o.colour, "colour", "c", "", "palette colour name, or r,g,b")
	fs.BoolVar(&o.hs, "hs", false, "send an r,g,b colour as hue and saturation instead of xy")
	fs.IntVar(&o.hue, "hue", 0, "hue (0-65535)")
	fs.IntVar(&o.saturation, "saturation", 0, "saturation (0-254)")
	fs.IntVarP(&o.temperature, "temperature", "t", 0, "colour temperature")
	fs.IntVar(&o.transition, "transition", -1, "transition time in tenths of a second")

	if err := fs.Parse(args); err != nil {
		return nil, o, err
	}
	if o.on && o.off {
		return nil, o, errors.New("--on and --off can't be used together")
	}
	return fs, o, nil
}

func run(args []string, out io.Writer, logger *log.Logger) error {
	fs, o, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.InitialiseConfig()
	if err != nil {
		return err
	}
	if cfg.Level() == log.DebugLevel {
		logger.SetLevel(log.DebugLevel)
	}

	client := gateway.NewClient(*cfg, logger)
	devices, err := client.DiscoverDevices()
	if err != nil {
		return err
	}
	found := lo.Filter(devices, func(d models.Device, _ int) bool { return d.Type == models.DeviceTypeLight })

	if o.list {
		for _, d := range found {
			fmt.Fprintf(out, "%d\t%s\n", d.InstanceID, d.Name)
		}
		return nil
	}

	device, ok := lo.Find(found, func(d models.Device) bool {
		return strings.EqualFold(d.Name, o.light) || strconv.Itoa(d.InstanceID) == o.light
	})
	if !ok {
		return fmt.Errorf("light not found: %q", o.light)
	}

	light := lights.NewLight(logger, client, device)
	if o.direct {
		return setDirect(fs, o, light)
	}
	return stage(fs, o, light)
}

// stage queues every requested change and sends them as one request
func stage(fs *pflag.FlagSet, o options, light *lights.Light) error {
	switch {
	case o.on:
		light.UpdateOn(true)
	case o.off:
		light.UpdateOn(false)
	}
	if fs.Changed("brightness") {
		light.UpdateBrightness(o.brightness)
	}
	if fs.Changed("colour") {
		hex, rgb, err := parseColour(o.colour)
		if err != nil {
			return err
		}
		switch {
		case hex != "":
			light.UpdateColourHex(hex)
		case o.hs:
			light.UpdateColourHS(rgb)
		default:
			light.UpdateColourRGB(rgb)
		}
	}
	if fs.Changed("hue") {
		light.UpdateHue(o.hue)
	}
	if fs.Changed("saturation") {
		light.UpdateSaturation(o.saturation)
	}
	if fs.Changed("temperature") {
		light.UpdateColourTemperature(o.temperature)
	}

	if light.Pending().IsEmpty() {
		return errors.New("nothing to change")
	}

	var ok bool
	if o.transition >= 0 {
		ok = light.ApplyUpdatesWithTransition(o.transition)
	} else {
		ok = light.ApplyUpdates()
	}
	if !ok {
		return fmt.Errorf("updating %s failed", light.Name)
	}
	return nil
}

// setDirect sends each requested change on its own
func setDirect(fs *pflag.FlagSet, o options, light *lights.Light) error {
	transition := []int{}
	if o.transition >= 0 {
		transition = append(transition, o.transition)
	}

	results := []bool{}
	switch {
	case o.on:
		results = append(results, light.SetOn(true, transition...))
	case o.off:
		results = append(results, light.SetOn(false, transition...))
	}
	if fs.Changed("brightness") {
		results = append(results, light.SetBrightness(o.brightness, transition...))
	}
	if fs.Changed("colour") {
		hex, rgb, err := parseColour(o.colour)
		if err != nil {
			return err
		}
		switch {
		case hex != "":
			results = append(results, light.SetColourHex(hex, transition...))
		case o.hs:
			results = append(results, light.SetColourHS(rgb, transition...))
		default:
			results = append(results, light.SetColourRGB(rgb, transition...))
		}
	}
	if fs.Changed("hue") {
		results = append(results, light.SetHue(o.hue, transition...))
	}
	if fs.Changed("saturation") {
		results = append(results, light.SetSaturation(o.saturation, transition...))
	}
	if fs.Changed("temperature") {
		results = append(results, light.SetColourTemperature(o.temperature, transition...))
	}

	if len(results) == 0 {
		return errors.New("nothing to change")
	}
	if lo.Contains(results, false) {
		return fmt.Errorf("updating %s failed", light.Name)
	}
	return nil
}

// parseColour accepts a palette name or an "r,g,b" triple
func parseColour(value string) (string, colour.RGB, error) {
	if hex, found := colour.LookupHex(value); found {
		return hex, colour.RGB{}, nil
	}

	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return "", colour.RGB{}, fmt.Errorf("unknown colour: %q", value)
	}
	channels := make([]uint8, 3)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return "", colour.RGB{}, fmt.Errorf("invalid colour %q: %w", value, err)
		}
		channels[i] = uint8(v)
	}
	return "", colour.RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}
