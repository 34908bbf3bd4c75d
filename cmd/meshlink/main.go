package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/meshforge/meshlink-server/internal/config"
	"github.com/meshforge/meshlink-server/pkg/meshproto"
)

// meshlink generates and inspects Meshtastic channel links without a
// running server.
func main() {
	var (
		mode    string
		name    string
		baseURL string
		region  string
		preset  string
		hop     uint
		txPower uint
		decode  string
	)

	flag.StringVar(&mode, "mode", "network", "Link to generate: network, private or custom")
	flag.StringVar(&name, "name", "", "Channel name (private and custom modes)")
	flag.StringVar(&baseURL, "base", meshproto.DefaultBaseURL, "Base URL for the deep link")
	flag.StringVar(&region, "region", meshproto.DefaultRegion.String(), "Region code name (custom mode)")
	flag.StringVar(&preset, "preset", meshproto.DefaultPreset.String(), "Modem preset name (custom mode)")
	flag.UintVar(&hop, "hop", meshproto.DefaultHopLimit, "Hop limit (custom mode)")
	flag.UintVar(&txPower, "txpower", meshproto.DefaultTxPower, "TX power in dBm (custom mode)")
	flag.StringVar(&decode, "decode", "", "Decode a channel URL instead of generating one")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if decode != "" {
		runDecode(decode)
		return
	}

	switch mode {
	case "network":
		url, err := meshproto.GenerateNetworkURL(baseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to generate network link")
		}
		fmt.Println(url)

	case "private":
		pc, err := meshproto.GeneratePrivateChannelURL(baseURL, name)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to generate private link")
		}
		fmt.Printf("url: %s\n", pc.URL)
		fmt.Printf("psk: %s\n", pc.PSK)
		fmt.Println("Store the PSK separately; anyone with the URL can read the channel.")

	case "custom":
		url, err := generateCustom(baseURL, name, region, preset, uint32(hop), uint32(txPower))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to generate custom link")
		}
		fmt.Println(url)

	default:
		log.Fatal().Str("mode", mode).Msg("Unknown mode")
	}
}

// generateCustom builds a one-channel configuration with explicit
// radio parameters and the well-known public PSK
func generateCustom(baseURL, name, region, preset string, hop, txPower uint32) (string, error) {
	r, err := config.ParseRegion(region)
	if err != nil {
		return "", err
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return "", err
	}

	cs := &meshproto.ChannelSet{
		Channels: []meshproto.Channel{{
			Settings: meshproto.ChannelSettings{
				PSK:             meshproto.DefaultPSK,
				Name:            name,
				UplinkEnabled:   true,
				DownlinkEnabled: true,
			},
			Role: meshproto.RolePrimary,
		}},
		LoRa: &meshproto.LoRaConfig{
			Region:      r,
			ModemPreset: p,
			HopLimit:    hop,
			TxEnabled:   true,
			TxPower:     txPower,
		},
	}

	return meshproto.GenerateURL(baseURL, cs)
}

// runDecode prints the channels and radio parameters carried in a link
func runDecode(url string) {
	cs, err := meshproto.DecodeURL(url)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode link")
	}

	for i, ch := range cs.Channels {
		name := ch.Settings.Name
		if name == "" {
			name = "(primary)"
		}
		fmt.Printf("channel %d: slot=%d role=%s name=%s psk=%d bytes uplink=%v downlink=%v\n",
			i, ch.Index, ch.Role, name, len(ch.Settings.PSK),
			ch.Settings.UplinkEnabled, ch.Settings.DownlinkEnabled)
	}

	if cs.LoRa != nil {
		fmt.Printf("lora: region=%s preset=%s hop=%d tx=%v power=%ddBm\n",
			cs.LoRa.Region, cs.LoRa.ModemPreset, cs.LoRa.HopLimit,
			cs.LoRa.TxEnabled, cs.LoRa.TxPower)
	}
}
