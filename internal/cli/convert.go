package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brettsor/jsonxsd"
)

var convertCmd = &cobra.Command{
	Use:   "convert <schema.xsd> <document.xml>",
	Short: "Decode an XML document against its schema and print the equivalent JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := convert(args[0], args[1]); err != nil {
			printFatal(err)
		}
		return nil
	},
}

func convert(xsdPath, xmlPath string) error {
	xsdBytes, err := os.ReadFile(xsdPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", xsdPath, err)
	}
	xmlBytes, err := os.ReadFile(xmlPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", xmlPath, err)
	}

	idx, err := jsonxsd.BuildIndex(xsdBytes)
	if err != nil {
		return err
	}

	rec := recognizerForLocale(cfg)
	value, err := jsonxsd.Decode(idx, xmlBytes, rec)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result as json: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
