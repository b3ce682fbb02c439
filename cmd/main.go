package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teris-io/cli"

	"github.com/airyc-lang/airyc"
	"github.com/airyc-lang/airyc/ir"
)

var Description = strings.ReplaceAll(`
Airyc compiles a small Rust-flavored statically typed systems language to
LLVM IR: one .ll file per translation unit. It does not link the emitted IR;
no executable is produced.
`, "\n", " ")

var Airyc = cli.New(Description).
	WithOption(cli.NewOption("i", "Entry source file").WithType(cli.TypeString)).
	WithOption(cli.NewOption("o", "Output directory for emitted .ll files").WithType(cli.TypeString)).
	WithOption(cli.NewOption("r", "Runtime archive to link against (accepted; no linking is done)").WithType(cli.TypeString)).
	WithOption(cli.NewOption("O", "Optimization level (currently only o0)").WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	entry, ok := options["i"]
	if !ok || entry == "" {
		fmt.Fprintln(os.Stderr, "airyc: missing required -i <entry.airy>")
		return 1
	}

	outDir := options["o"]
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "airyc: cannot create output directory: %s\n", err)
		return 1
	}

	cfg := airyc.NewConfig()
	if opt, ok := options["O"]; ok && opt != "" {
		cfg.SetString("codegen.opt_level", opt)
	}

	diags := airyc.NewBag()
	loader := airyc.NewRelativeImportLoader()
	ms := airyc.NewModuleSet(loader, diags)
	entryID := ms.LoadEntry(entry)

	if diags.HasErrors() || entryID < 0 {
		reportAndExit(ms, diags)
		return 1
	}

	an := airyc.NewAnalyzer(ms, diags)
	side, _ := an.Run()
	if diags.HasErrors() {
		reportAndExit(ms, diags)
		return 1
	}

	stem := strings.TrimSuffix(filepath.Base(entry), filepath.Ext(entry))
	for _, id := range ms.TopoOrder() {
		mod := ms.Module(id)
		lowerer := ir.NewLowerer(ms, an, side)
		out := lowerer.LowerModule(mod)

		unitStem := strings.TrimSuffix(filepath.Base(mod.Path), filepath.Ext(mod.Path))
		llPath := filepath.Join(outDir, unitStem+".ll")
		if err := os.WriteFile(llPath, []byte(out.Print()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "airyc: cannot write %s: %s\n", llPath, err)
			return 1
		}
	}

	// Linking the emitted .ll files (optionally against -r's runtime
	// archive) into the "stem" executable is out of scope here: it
	// shells out to the system's clang/llc, which this package never
	// invokes on its own behalf.
	_ = stem
	return 0
}

func reportAndExit(ms *airyc.ModuleSet, diags *airyc.Bag) {
	renderer := airyc.NewRenderer(airyc.AirycTheme)
	for i := 0; i < ms.Len(); i++ {
		mod := ms.Module(airyc.ModuleID(i))
		renderer.AddFile(mod.File, mod.Path, mod.Source)
	}
	fmt.Fprint(os.Stderr, renderer.RenderAll(diags))
}

func main() { os.Exit(Airyc.Run(os.Args, os.Stdout)) }
