package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"solo/pkg/compiler"
	"solo/pkg/config"
	"solo/pkg/estree"
	"solo/pkg/reader"
	"solo/pkg/utils"
	"solo/pkg/watch"
)

func main() {
	inPath := flag.String("in", "", "input source file path")
	outPath := flag.String("out", "", "output JSON file path, - for stdout (default: input with .json extension)")
	configPath := flag.String("config", "", "project file (default: solo.json next to the input or watched directory)")
	watchDir := flag.String("watch", "", "recompile every source file under this directory as it changes")
	formsOnly := flag.Bool("forms", false, "stop after reading and print the forms as JSON")
	defineConfigFlags(flag.CommandLine)
	flag.Parse()

	if *inPath == "" && *watchDir == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in to compile a file or -watch <dir> to watch a tree")
		flag.Usage()
		os.Exit(2)
	}
	if *formsOnly && *watchDir != "" {
		fmt.Fprintln(os.Stderr, "use either -forms or -watch, not both")
		os.Exit(2)
	}

	base := *watchDir
	if base == "" {
		base = *inPath
	}
	cfg, err := loadConfig(*configPath, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg, err = overrideConfig(cfg, flag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *inPath != "" {
		if err := compileFile(*inPath, *outPath, cfg, *formsOnly); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if *watchDir != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := watch.New(*watchDir, cfg, log.Default()).Run(ctx); err != nil {
			log.Fatalf("watch failed for %q: %v", *watchDir, err)
		}
	}
}

// defineConfigFlags adds one flag per project file setting. Only flags given
// on the command line override the file; see overrideConfig.
func defineConfigFlags(fs *flag.FlagSet) {
	d := config.Default()
	fs.String("loader", d.ModuleLoader, "module loading function called by import")
	fs.String("kind", d.DeclarationKind, "declaration keyword for def: var, let or const")
	fs.Bool("comments", d.Comments, "attach top-level comments to the output")
	fs.Bool("locations", d.Locations, "emit loc on every node")
	fs.Bool("strict", d.UseStrict, `prepend a "use strict" directive`)
	fs.String("ext", d.Extension, "source file extension recompiled by -watch")
	fs.String("indent", d.Indent, "JSON indentation of the output")
}

// overrideConfig applies the config flags that were set on fs to cfg and
// validates the result.
func overrideConfig(cfg config.Config, fs *flag.FlagSet) (config.Config, error) {
	fs.Visit(func(f *flag.Flag) {
		getter, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch v := getter.Get().(type) {
		case string:
			switch f.Name {
			case "loader":
				cfg.ModuleLoader = v
			case "kind":
				cfg.DeclarationKind = v
			case "ext":
				cfg.Extension = v
			case "indent":
				cfg.Indent = v
			}
		case bool:
			switch f.Name {
			case "comments":
				cfg.Comments = v
			case "locations":
				cfg.Locations = v
			case "strict":
				cfg.UseStrict = v
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadConfig reads the explicit project file, or solo.json in the directory
// of target when none is given.
func loadConfig(explicit, target string) (config.Config, error) {
	if explicit != "" {
		data, err := os.ReadFile(explicit)
		if err != nil {
			return config.Default(), err
		}
		return config.Parse(data)
	}
	dir := target
	if info, statErr := os.Stat(target); statErr != nil || !info.IsDir() {
		_, parent, err := utils.GetPathInfo(target)
		if err != nil {
			return config.Default(), err
		}
		dir = parent
	}
	return config.Load(filepath.Join(dir, config.FileName))
}

func compileFile(inPath, outPath string, cfg config.Config, formsOnly bool) error {
	source, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input file %q: %w", inPath, err)
	}

	var data []byte
	if formsOnly {
		forms, err := reader.Read(string(source), inPath)
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}
		data, err = json.MarshalIndent(forms, "", cfg.Indent)
		if err != nil {
			return err
		}
		data = append(data, '\n')
	} else {
		prog, err := compiler.Compile(string(source), inPath, cfg.Options())
		if err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}
		data, err = estree.Encode(prog, cfg.Indent)
		if err != nil {
			return err
		}
	}

	return writeOutput(outPath, inPath, data)
}

func writeOutput(outPath, inPath string, data []byte) error {
	if outPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if outPath == "" {
		outPath = utils.DefaultOutputPath(inPath)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", outPath, err)
	}
	fmt.Printf("compiled %s -> %s\n", inPath, outPath)
	return nil
}
