package hinge

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hingebio/hinge/config"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// Flags contains parsed cobra Flags like "in", "out", "enzyme", etc that are used by multiple commands.
type Flags struct {
	// the path of the target FASTA file, or a raw sequence passed directly
	in string

	// the name of the file to write the output to
	out string

	// how many fragments the target should split into
	fragments int

	// the name of the Type IIS enzyme cutting the junctions
	enzyme string

	// the optimizer to run
	strategy Strategy

	// 1-based start of the reading frame, 0 for a noncoding target
	codingStart int

	// spans junctions should stay out of (scored against, not excluded)
	domains []Range

	// windows junctions are restricted to, when any
	allowed []Range

	// spans junctions are excluded from outright
	forbidden []Range

	// skip primer window profiling
	noPrimers bool

	// overhangs to pick from in pool mode
	pool []string

	// how many overhangs to pick from the pool
	count int
}

// inputParser contains methods for parsing flags from the input &cobra.Command.
type inputParser struct{}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(in, out, enzymeName, strategyName string, fragments int) (*Flags, *config.Config) {
	c := config.New()

	strategy, err := ParseStrategy(strategyName)
	if err != nil {
		stderr.Fatal(err)
	}

	return &Flags{
		in:        in,
		out:       out,
		fragments: fragments,
		enzyme:    enzymeName,
		strategy:  strategy,
	}, c
}

// parseDesignFlags gathers the target sequence, fragment count, etc from a cobra cmd object.
// returns Flags and a Config struct for Junctions or Scan.
func parseDesignFlags(cmd *cobra.Command, args []string, strict bool) (*Flags, *config.Config) {
	var err error
	fs := &Flags{} // parsed flags
	p := inputParser{}
	c := config.New()

	if fs.in, err = cmd.Flags().GetString("in"); fs.in == "" || err != nil {
		if len(args) > 0 {
			fs.in = args[0] // a path or a raw sequence
		} else if fs.in, err = p.guessInput(); strict && err != nil {
			cmd.Help()
			stderr.Fatal(err)
		}
	}

	if fs.out, err = cmd.Flags().GetString("out"); strict && (fs.out == "" || err != nil) {
		fs.out = p.guessOutput(fs.in) // guess at an output name
	}

	if fs.fragments, err = cmd.Flags().GetInt("fragments"); strict && err != nil {
		cmd.Help()
		stderr.Fatalf("failed to parse fragment count: %v", err)
	}

	if fs.enzyme, err = cmd.Flags().GetString("enzyme"); err != nil {
		cmd.Help()
		stderr.Fatalf("failed to parse enzyme name: %v", err)
	}

	strategyName, err := cmd.Flags().GetString("strategy")
	if strict && err != nil {
		cmd.Help()
		stderr.Fatalf("failed to parse strategy: %v", err)
	}
	if fs.strategy, err = ParseStrategy(strategyName); err != nil {
		cmd.Help()
		stderr.Fatal(err)
	}

	if fs.codingStart, err = cmd.Flags().GetInt("coding-start"); err != nil {
		fs.codingStart = 0
	}

	domains, _ := cmd.Flags().GetString("domains")
	if fs.domains, err = p.parseRanges(domains); err != nil {
		cmd.Help()
		stderr.Fatalf("failed to parse domains: %v", err)
	}

	within, _ := cmd.Flags().GetString("within")
	if fs.allowed, err = p.parseRanges(within); err != nil {
		cmd.Help()
		stderr.Fatalf("failed to parse junction windows: %v", err)
	}

	avoid, _ := cmd.Flags().GetString("avoid")
	if fs.forbidden, err = p.parseRanges(avoid); err != nil {
		cmd.Help()
		stderr.Fatalf("failed to parse avoided spans: %v", err)
	}

	fs.noPrimers, _ = cmd.Flags().GetBool("no-primers")

	return fs, c
}

// parsePoolFlags gathers the overhang pool and pick count from a cobra cmd object.
// returns Flags and a Config struct for Overhangs.
func parsePoolFlags(cmd *cobra.Command, args []string) (*Flags, *config.Config) {
	var err error
	fs := &Flags{}
	p := inputParser{}
	c := config.New()

	poolFlag, err := cmd.Flags().GetString("pool")
	if err != nil {
		cmd.Help()
		stderr.Fatalf("failed to parse the overhang pool: %v", err)
	}
	fs.pool = p.parsePool(poolFlag, args)

	if fs.count, err = cmd.Flags().GetInt("count"); err != nil || fs.count < 1 {
		cmd.Help()
		stderr.Fatalln("\nno overhang count passed.")
	}

	if fs.enzyme, err = cmd.Flags().GetString("enzyme"); err != nil {
		cmd.Help()
		stderr.Fatalf("failed to parse enzyme name: %v", err)
	}

	fs.out, _ = cmd.Flags().GetString("out")

	return fs, c
}

// guessInput returns the first fasta file in the current directory.
func (p *inputParser) guessInput() (in string, err error) {
	dir, _ := filepath.Abs(".")
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext == ".fa" || ext == ".fasta" {
			return file.Name(), nil
		}
	}

	return "", fmt.Errorf("failed: no input argument set and no fasta file found in %s", dir)
}

// guessOutput gets an outpath path from an input path (if no output path is
// specified). It uses the same name as the input path to create an output.
func (p *inputParser) guessOutput(in string) (out string) {
	ext := filepath.Ext(in)
	noExt := in[0 : len(in)-len(ext)]
	return noExt + ".output.json"
}

// readSequence returns the name and sequence of the design target. The
// input is either a path to a FASTA file or a raw sequence passed
// directly on the command line.
func (p *inputParser) readSequence(in string) (name, seq string, err error) {
	if _, statErr := os.Stat(in); statErr != nil {
		// not a file, treat the argument itself as the sequence
		seq = strings.ToUpper(strings.TrimSpace(in))
		if seq == "" || !validBases(seq) {
			return "", "", fmt.Errorf("failed to read %s: not a file and not a DNA sequence", in)
		}
		return "input", seq, nil
	}

	dat, err := os.ReadFile(in)
	if err != nil {
		return "", "", err
	}

	return p.parseFasta(in, string(dat))
}

// parseFasta pulls the first record out of a FASTA file. A file without
// a header row parses as one bare sequence named after the file.
func (p *inputParser) parseFasta(path, contents string) (name, seq string, err error) {
	// create a regex for cleaning the sequence
	var unwantedChars = regexp.MustCompile(`(?im)[^atgc]|\W`)

	if !strings.HasPrefix(strings.TrimSpace(contents), ">") {
		seq = strings.ToUpper(unwantedChars.ReplaceAllString(contents, ""))
		if seq == "" {
			return "", "", fmt.Errorf("failed to parse a sequence from %s", path)
		}
		return p.nameFromPath(path), seq, nil
	}

	// find the header rows
	lines := strings.Split(contents, "\n")
	var headerIndices []int
	var ids []string
	for i, line := range lines {
		if strings.HasPrefix(line, ">") {
			headerIndices = append(headerIndices, i)
			ids = append(ids, strings.TrimSpace(line[1:]))
		}
	}

	if len(headerIndices) > 1 {
		stderr.Printf(
			"warning: %d records were in %s. Only targeting the sequence of the first: %s\n",
			len(headerIndices),
			path,
			ids[0],
		)
	}

	// accumulate the sequence between the first header and the next
	nextHeader := len(lines)
	if len(headerIndices) > 1 {
		nextHeader = headerIndices[1]
	}
	seqJoined := strings.Join(lines[headerIndices[0]+1:nextHeader], "")
	seq = strings.ToUpper(unwantedChars.ReplaceAllString(seqJoined, ""))

	if seq == "" {
		return "", "", fmt.Errorf("failed to parse a sequence from %s", path)
	}

	name = ids[0]
	if name == "" {
		name = p.nameFromPath(path)
	}

	return name, seq, nil
}

// nameFromPath returns the file's base name without its extension.
func (p *inputParser) nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseRanges parses comma separated 1-based inclusive spans, ex
// "120-450,800-900", into 0-based half open ranges.
func (p *inputParser) parseRanges(flag string) (ranges []Range, err error) {
	if strings.TrimSpace(flag) == "" {
		return nil, nil
	}

	spanRegex := regexp.MustCompile(`^(\d+)-(\d+)$`)
	for _, field := range strings.Split(flag, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		groups := spanRegex.FindStringSubmatch(field)
		if len(groups) < 3 {
			return nil, fmt.Errorf("failed to parse span %s: expected start-end, ex 120-450", field)
		}

		start, _ := strconv.Atoi(groups[1])
		end, _ := strconv.Atoi(groups[2])
		if start < 1 || end < start {
			return nil, fmt.Errorf("failed to parse span %s: start and end must be positive and ordered", field)
		}

		ranges = append(ranges, Range{Start: start - 1, End: end})
	}

	return ranges, nil
}

// parsePool takes an input string and returns a list of overhangs. The
// command's arguments double as pool entries.
func (p *inputParser) parsePool(flag string, args []string) []string {
	splitFunc := func(c rune) bool {
		return c == ' ' || c == ',' // space or comma separated
	}

	joined := strings.Join(append([]string{flag}, args...), " ")
	return strings.FieldsFunc(strings.ToUpper(joined), splitFunc)
}
