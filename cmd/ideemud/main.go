package main

import (
	"fmt"
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/spf13/cobra"

	"github.com/mister-x86/ide"
)

var log = capnslog.NewPackageLogger("github.com/mister-x86/ide", "ideemud")

var (
	drive0Path      string
	drive1Path      string
	drive1IsCD      bool
	channelBase     uint32
	protocolVersion uint8
)

var rootCmd = &cobra.Command{
	Use:   "ideemud",
	Short: "mount disk/CD images onto an emulated IDE channel",
}

var mountCmd = &cobra.Command{
	Use:   "mount",
	Short: "mount the configured images and report the resulting drive descriptors",
	Run:   runMount,
}

func init() {
	mountCmd.Flags().StringVar(&drive0Path, "drive0", "", "HDD image path for channel slot 0")
	mountCmd.Flags().StringVar(&drive1Path, "drive1", "", "CD image path for channel slot 1 (omit for an empty tray)")
	mountCmd.Flags().BoolVar(&drive1IsCD, "drive1-cd", true, "treat slot 1 as a CD-ROM rather than a second HDD")
	mountCmd.Flags().Uint32Var(&channelBase, "base", 0, "register window base address for this channel")
	mountCmd.Flags().Uint8Var(&protocolVersion, "proto-version", uint8(ide.Version3), "register layout version (1, 2, or 3)")
	rootCmd.AddCommand(mountCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// runMount wires Mount and Channel.OnRequest together against a
// logging-only RegisterWindow. A real deployment supplies a RegisterWindow
// that drives actual FPGA bus memory in its place (§1, §6) — that
// transport is genuinely external to this module.
func runMount(cmd *cobra.Command, args []string) {
	ch := &ide.Channel{
		Base:   channelBase,
		Ver:    ide.Version(protocolVersion),
		Window: &loggingWindow{},
	}

	if drive0Path != "" {
		mountSlot(ch, 0, drive0Path, false)
	}

	switch {
	case drive1Path != "":
		mountSlot(ch, 1, drive1Path, drive1IsCD)
	case drive1IsCD:
		if err := ide.Mount(ch, 1, nil, true, ch.Ver); err != nil {
			log.Errorf("mounting empty CD tray in slot 1: %v", err)
			os.Exit(1)
		}
		log.Info("slot 1: empty CD tray")
	}

	if err := ch.OnRequest(ide.Request{Kind: ide.RequestReset}); err != nil {
		log.Errorf("reset: %v", err)
		os.Exit(1)
	}
	fmt.Println("mount complete")
}

func mountSlot(ch *ide.Channel, slot int, path string, cd bool) {
	img, err := openImage(path)
	if err != nil {
		log.Errorf("opening %s: %v", path, err)
		os.Exit(1)
	}
	if err := ide.Mount(ch, slot, img, cd, ch.Ver); err != nil {
		log.Errorf("mounting slot %d from %s: %v", slot, path, err)
		os.Exit(1)
	}
	d := ch.Drives[slot]
	if cd {
		log.Infof("slot %d: mounted %s as CD-ROM", slot, path)
	} else {
		log.Infof("slot %d: mounted %s as HDD (%d cylinders, %d heads, %d sectors/track)",
			slot, path, d.Cylinders, d.Heads, d.SPT)
	}
}
