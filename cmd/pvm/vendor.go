package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/pvm-php/pvm/internal/lenaris"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var vendorOutput string

// createVendorCommand creates the vendor subcommand
func createVendorCommand() *cobra.Command {
	vendorCmd := &cobra.Command{
		Use:   "vendor",
		Short: "Show the detected host platform",
		Args:  cobra.NoArgs,
		RunE:  executeVendor,
	}
	vendorCmd.Flags().StringVarP(&vendorOutput, "output", "o", "text", "Output format (text, json, yaml)")
	return vendorCmd
}

func executeVendor(cmd *cobra.Command, args []string) error {
	vendor, err := lenaris.Discover(discovery)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch vendorOutput {
	case "text":
		fmt.Fprintf(out, "Vendor: %s\n", color.CyanString(vendor.ID().String()))
		if distro, ok := vendor.Distro(); ok {
			fmt.Fprintf(out, "Distro: %s\n", color.CyanString(distro.String()))
		}
	case "json":
		data, err := json.MarshalIndent(vendor, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling vendor: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(vendor)
		if err != nil {
			return fmt.Errorf("marshaling vendor: %w", err)
		}
		fmt.Fprint(out, string(data))
	default:
		return fmt.Errorf("unsupported output format %q (supported: text, json, yaml)", vendorOutput)
	}
	return nil
}
