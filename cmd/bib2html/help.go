package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bib2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render BibTeX files to HTML or PDF")
	fmt.Fprintln(w, "  styles     List built-in citation styles and themes")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'bib2html help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bib2html render <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render BibTeX files to an HTML fragment, a standalone page or a PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .bib file or directory (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory, - for stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Selection:")
	fmt.Fprintln(w, "  -f, --field <name>        Custom BibTeX field to keep (repeatable)")
	fmt.Fprintln(w, "      --filter <k=v>        Keep entries whose field equals value (repeatable)")
	fmt.Fprintln(w, "      --sort <key>          Sort key: year or a custom field")
	fmt.Fprintln(w, "      --order <s>           Sort order: asc, desc")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Formatting:")
	fmt.Fprintln(w, "  -s, --style <s>           Style name, .tmpl path or inline template")
	fmt.Fprintln(w, "      --title-link <list>   Fields tried for the title link (default: url,doi,arxiv)")
	fmt.Fprintln(w, "      --no-title-links      Disable title links")
	fmt.Fprintln(w, "      --list <s>            Wrapper element: ol, ul, div")
	fmt.Fprintln(w, "      --attr <k=v>          Wrapper attribute, bare name for boolean (repeatable)")
	fmt.Fprintln(w, "      --no-linkify          Do not link bare URLs")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory overriding embedded styles and themes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --standalone          Write a complete HTML page")
	fmt.Fprintln(w, "      --title <s>           Page heading")
	fmt.Fprintln(w, "      --intro <s>           Markdown shown above the list")
	fmt.Fprintln(w, "      --theme <s>           Theme name, .css path or none")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file")
	fmt.Fprintln(w, "      --lang <s>            Page language (default: en)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Print the page to PDF (needs Chrome)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --landscape           Landscape orientation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bib2html config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration render would use, as YAML.")
	fmt.Fprintln(w, "BIB2HTML_* environment variables are applied.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "styles":
		fmt.Fprintln(env.Stdout, "Usage: bib2html styles")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List built-in citation styles and themes.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: bib2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: bib2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
