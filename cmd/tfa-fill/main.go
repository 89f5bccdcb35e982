// tfa-fill analyzes templates and generates filled documents in one shot,
// without the MCP transport. Useful for batch runs and for checking what
// fields a template declares.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/curtislaw/mcp-template-filler/internal/config"
	"github.com/curtislaw/mcp-template-filler/internal/tfa"
	"github.com/curtislaw/mcp-template-filler/internal/tfa/values"
)

var (
	valuesPath  = flag.String("values", "", "Path to an exported JSON file of field values")
	rulesPath   = flag.String("rules", "", "Path to a YAML/JSON derivation rules file")
	outputMode  = flag.String("mode", "auto", "Output encoding: auto, text, rtf, pdf")
	outputDir   = flag.String("out", "filled", "Directory where filled documents are written")
	firmName    = flag.String("firmname", config.DefaultFirmName, "Firm name printed on PDF letterheads")
	firmContact = flag.String("firmcontact", config.DefaultFirmContact, "Firm contact line printed on PDF letterheads")
	listOnly    = flag.Bool("list", false, "Only list the extracted fields, do not generate")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one template path required\n\n")
		printUsage()
		os.Exit(1)
	}

	rules, err := values.LoadRules(*rulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rules: %v\n", err)
		os.Exit(1)
	}

	service := tfa.NewService(config.DefaultMaxFileSize, *firmName, *firmContact, rules)

	analysis, err := service.AnalyzeTemplates(tfa.AnalyzeTemplatesRequest{Paths: flag.Args()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing templates: %v\n", err)
		os.Exit(1)
	}

	for _, t := range analysis.Templates {
		if t.Error != "" {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", t.Name, t.Error)
		}
	}

	if *listOnly {
		for _, cat := range analysis.Categories {
			fmt.Printf("%s\n", cat.Name)
			for _, f := range cat.Fields {
				fmt.Printf("  %s [%s]\n", f.Key, f.Kind)
			}
		}
		return
	}

	if *valuesPath != "" {
		data, err := os.ReadFile(*valuesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading values file: %v\n", err)
			os.Exit(1)
		}
		if err := service.ImportValues(string(data)); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing values: %v\n", err)
			os.Exit(1)
		}
	}

	result, err := service.GenerateDocuments(tfa.GenerateDocumentsRequest{Mode: *outputMode})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, doc := range result.Documents {
		if !doc.Succeeded {
			fmt.Fprintf(os.Stderr, "FAILED  %s: %s\n", doc.Name, doc.Error)
			exitCode = 1
			continue
		}
		outPath := filepath.Join(*outputDir, doc.Name)
		if err := os.WriteFile(outPath, doc.Content, 0o640); err != nil {
			fmt.Fprintf(os.Stderr, "FAILED  %s: %v\n", doc.Name, err)
			exitCode = 1
			continue
		}
		fmt.Printf("OK      %s (%s, %d bytes)\n", outPath, doc.Kind, len(doc.Content))
	}

	os.Exit(exitCode)
}

func printHelp() {
	fmt.Println("TFA Fill - fill legal document templates from the command line")
	fmt.Println()
	fmt.Println("Scans templates for {{CATEGORY.FIELD_NAME|TYPE|OPTIONS}} placeholders,")
	fmt.Println("substitutes values from an exported JSON file, and writes the filled")
	fmt.Println("documents as text, RTF, or PDF.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -values        Exported JSON file of field values")
	fmt.Println("  -rules         Derivation rules file (e.g. county to judicial circuit)")
	fmt.Println("  -mode          Output encoding: auto (default), text, rtf, pdf")
	fmt.Println("  -out           Output directory (default: filled)")
	fmt.Println("  -firmname      Firm name printed on PDF letterheads")
	fmt.Println("  -firmcontact   Firm contact line printed on PDF letterheads")
	fmt.Println("  -list          List extracted fields and exit")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  tfa-fill -list petition.txt")
	fmt.Println("  tfa-fill -values client.json -mode pdf petition.txt summons.md")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  tfa-fill [options] <template>...")
}
