// Package main provides the CLI entrypoint for xorcrack.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/xorcrack/internal/breaker"
	"github.com/verte-zerg/xorcrack/internal/codec"
	"github.com/verte-zerg/xorcrack/internal/config"
	"github.com/verte-zerg/xorcrack/internal/corpus"
	"github.com/verte-zerg/xorcrack/internal/explore"
	"github.com/verte-zerg/xorcrack/internal/frequency"
	"github.com/verte-zerg/xorcrack/internal/model"
	"github.com/verte-zerg/xorcrack/internal/report"
	"github.com/verte-zerg/xorcrack/internal/store"
	"github.com/verte-zerg/xorcrack/internal/xor"
)

const (
	defaultTop        = 3
	defaultChunks     = 4
	defaultMaxKeySize = 40
	defaultFormat     = "base64"
)

var (
	breakCorpus     string
	breakCharset    string
	breakFormat     string
	breakTop        int
	breakChunks     int
	breakMaxKeySize int
	breakCandidates bool

	singleCorpus  string
	singleCharset string

	detectCorpus  string
	detectCharset string

	encryptKey    string
	encryptFormat string

	freqCorpus  string
	freqCharset string
	freqTop     int
	freqList    bool

	fetchURL string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "xorcrack [file]",
		Short:         "Repeating-key XOR cryptanalysis toolkit",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runBreakCmd,
	}

	rootCmd.Flags().StringVar(&breakCorpus, "corpus", "", "baseline corpus file for frequency analysis")
	rootCmd.Flags().StringVar(&breakCharset, "charset", "", "characters considered during scoring (default: letters and digits)")
	rootCmd.Flags().StringVar(&breakFormat, "format", defaultFormat, "ciphertext format: base64, hex, or raw")
	rootCmd.Flags().IntVar(&breakTop, "top", defaultTop, "candidate key sizes to try")
	rootCmd.Flags().IntVar(&breakChunks, "chunks", defaultChunks, "chunks sampled per candidate key size")
	rootCmd.Flags().IntVar(&breakMaxKeySize, "max-key-size", defaultMaxKeySize, "upper bound for candidate key sizes")
	rootCmd.Flags().BoolVar(&breakCandidates, "candidates", false, "print the per-key-size diagnostics table")

	rootCmd.AddCommand(newSingleCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newXORCmd())
	rootCmd.AddCommand(newB64Cmd())
	rootCmd.AddCommand(newFreqCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newExploreCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runBreakCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveAnalysisConfig(cmd, breakCorpus, breakCharset, breakTop, breakChunks, breakMaxKeySize)
	if err != nil {
		return err
	}

	ciphertext, err := readCiphertext(args, breakFormat)
	if err != nil {
		return err
	}

	cs := charsetFromOption(cfg.Charset)
	expected, err := expectedTable(cmd.Context(), cfg.CorpusPath, cs)
	if err != nil {
		return err
	}

	recovery, candidates, ok := breaker.Break(ciphertext, expected, cs, breakerParams(cfg))
	if breakCandidates {
		if err := report.RenderCandidates(cmd.OutOrStdout(), candidates); err != nil {
			return fmt.Errorf("failed to render candidates: %w", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), ""); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if !ok {
		return fmt.Errorf("no candidate key size produced a decodable key")
	}
	if err := report.RenderRecovery(cmd.OutOrStdout(), recovery); err != nil {
		return fmt.Errorf("failed to render recovery: %w", err)
	}
	return nil
}

func newSingleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "single <hex>",
		Short: "Break a single-byte XOR cipher",
		Args:  cobra.ExactArgs(1),
		RunE:  runSingleCmd,
	}
	cmd.Flags().StringVar(&singleCorpus, "corpus", "", "baseline corpus file for frequency analysis")
	cmd.Flags().StringVar(&singleCharset, "charset", "", "characters considered during scoring (default: letters and digits)")
	return cmd
}

func runSingleCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveAnalysisConfig(cmd, singleCorpus, singleCharset, defaultTop, defaultChunks, defaultMaxKeySize)
	if err != nil {
		return err
	}

	buf, err := codec.DecodeHex(args[0])
	if err != nil {
		return err
	}

	cs := charsetFromOption(cfg.Charset)
	expected, err := expectedTable(cmd.Context(), cfg.CorpusPath, cs)
	if err != nil {
		return err
	}

	result, ok := frequency.BreakSingleByte(buf, expected, cs)
	if !ok {
		return fmt.Errorf("no key byte produced decodable text")
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Key: %c\nScore: %.4f\n%s\n",
		result.Key, result.Score, result.Plaintext); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Find the single-byte XOR line in a file of hex lines",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDetectCmd,
	}
	cmd.Flags().StringVar(&detectCorpus, "corpus", "", "baseline corpus file for frequency analysis")
	cmd.Flags().StringVar(&detectCharset, "charset", "", "characters considered during scoring (default: letters and digits)")
	return cmd
}

func runDetectCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveAnalysisConfig(cmd, detectCorpus, detectCharset, defaultTop, defaultChunks, defaultMaxKeySize)
	if err != nil {
		return err
	}

	raw, err := readInput(args)
	if err != nil {
		return err
	}

	cs := charsetFromOption(cfg.Charset)
	expected, err := expectedTable(cmd.Context(), cfg.CorpusPath, cs)
	if err != nil {
		return err
	}

	var best frequency.BreakResult
	bestLine := -1
	for i, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		buf, err := codec.DecodeHex(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		result, ok := frequency.BreakSingleByte(buf, expected, cs)
		if !ok {
			continue
		}
		if bestLine < 0 || result.Score > best.Score {
			best = result
			bestLine = i
		}
	}
	if bestLine < 0 {
		return fmt.Errorf("no line produced decodable text")
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Line: %d\nKey: %c\nScore: %.4f\n%s\n",
		bestLine+1, best.Key, best.Score, best.Plaintext); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [file]",
		Short: "Apply repeating-key XOR (self-inverse, also decrypts)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEncryptCmd,
	}
	cmd.Flags().StringVar(&encryptKey, "key", "", "key to cycle over the input (required)")
	cmd.Flags().StringVar(&encryptFormat, "format", "hex", "output format: base64, hex, or raw")
	return cmd
}

func runEncryptCmd(cmd *cobra.Command, args []string) error {
	if encryptKey == "" {
		return fmt.Errorf("--key must not be empty")
	}

	raw, err := readInput(args)
	if err != nil {
		return err
	}
	out := xor.RepeatingKey(raw, []byte(encryptKey))

	switch encryptFormat {
	case "hex":
		_, err = fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeHex(out))
	case "base64":
		_, err = fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeBase64(out))
	case "raw":
		_, err = cmd.OutOrStdout().Write(out)
	default:
		return fmt.Errorf("unknown output format %q", encryptFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newXORCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xor <hexA> <hexB>",
		Short: "XOR two equal-length hex strings",
		Args:  cobra.ExactArgs(2),
		RunE:  runXORCmd,
	}
}

func runXORCmd(cmd *cobra.Command, args []string) error {
	a, err := codec.DecodeHex(args[0])
	if err != nil {
		return err
	}
	b, err := codec.DecodeHex(args[1])
	if err != nil {
		return err
	}
	out, err := xor.Fixed(a, b)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeHex(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newB64Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "b64 <hex>",
		Short: "Re-encode a hex string as Base64",
		Args:  cobra.ExactArgs(1),
		RunE:  runB64Cmd,
	}
}

func runB64Cmd(cmd *cobra.Command, args []string) error {
	out, err := codec.HexToBase64(args[0])
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Build, cache, and inspect frequency tables",
		Args:  cobra.NoArgs,
		RunE:  runFreqCmd,
	}
	cmd.Flags().StringVar(&freqCorpus, "corpus", "", "baseline corpus file for frequency analysis")
	cmd.Flags().StringVar(&freqCharset, "charset", "", "characters considered during scoring (default: letters and digits)")
	cmd.Flags().IntVar(&freqTop, "top", 20, "number of entries to print")
	cmd.Flags().BoolVar(&freqList, "list", false, "list cached tables instead of building one")
	return cmd
}

func runFreqCmd(cmd *cobra.Command, _ []string) error {
	if freqList {
		return listCachedTables(cmd.Context(), cmd.OutOrStdout())
	}

	cfg, err := resolveAnalysisConfig(cmd, freqCorpus, freqCharset, defaultTop, defaultChunks, defaultMaxKeySize)
	if err != nil {
		return err
	}
	cs := charsetFromOption(cfg.Charset)
	expected, err := expectedTable(cmd.Context(), cfg.CorpusPath, cs)
	if err != nil {
		return err
	}

	type entry struct {
		r rune
		f float64
	}
	entries := make([]entry, 0, len(expected))
	for r, f := range expected {
		entries = append(entries, entry{r, f})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].f != entries[j].f {
			return entries[i].f > entries[j].f
		}
		return entries[i].r < entries[j].r
	})
	if len(entries) > freqTop {
		entries = entries[:freqTop]
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%c %.5f\n", e.r, e.f); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func listCachedTables(ctx context.Context, w io.Writer) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open table cache: %w", err)
	}
	defer closeStore(st)

	infos, err := st.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, "No cached tables.")
		return err
	}
	for _, info := range infos {
		if _, err := fmt.Fprintf(w, "%s  %s  entries=%d  charset=%d runes\n",
			info.CreatedAt.Format("2006-01-02 15:04"), info.CorpusPath,
			info.Entries, len([]rune(info.Charset))); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a baseline corpus into the local cache",
		Args:  cobra.NoArgs,
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVar(&fetchURL, "url", corpus.DefaultURL, "corpus URL")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, _ []string) error {
	result, err := corpus.Fetch(cmd.Context(), fetchURL, config.DefaultCorpusCacheDir())
	if err != nil {
		return fmt.Errorf("failed to fetch corpus: %w", err)
	}
	if result.Cached {
		logErrf("Using cached corpus %s\n", result.Filename)
	} else {
		logErrf("Downloaded %s\n", result.Filename)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), result.Path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse candidate key sizes interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExploreCmd,
	}
	cmd.Flags().StringVar(&breakCorpus, "corpus", "", "baseline corpus file for frequency analysis")
	cmd.Flags().StringVar(&breakCharset, "charset", "", "characters considered during scoring (default: letters and digits)")
	cmd.Flags().StringVar(&breakFormat, "format", defaultFormat, "ciphertext format: base64, hex, or raw")
	cmd.Flags().IntVar(&breakTop, "top", defaultTop, "candidate key sizes to try")
	cmd.Flags().IntVar(&breakChunks, "chunks", defaultChunks, "chunks sampled per candidate key size")
	cmd.Flags().IntVar(&breakMaxKeySize, "max-key-size", defaultMaxKeySize, "upper bound for candidate key sizes")
	return cmd
}

func runExploreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveAnalysisConfig(cmd, breakCorpus, breakCharset, breakTop, breakChunks, breakMaxKeySize)
	if err != nil {
		return err
	}

	ciphertext, err := readCiphertext(args, breakFormat)
	if err != nil {
		return err
	}

	cs := charsetFromOption(cfg.Charset)
	expected, err := expectedTable(cmd.Context(), cfg.CorpusPath, cs)
	if err != nil {
		return err
	}

	_, candidates, _ := breaker.Break(ciphertext, expected, cs, breakerParams(cfg))

	program := tea.NewProgram(explore.NewModel(candidates), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func resolveAnalysisConfig(cmd *cobra.Command, corpusPath, charset string, top, chunks, maxKeySize int) (model.AnalysisConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.AnalysisConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "corpus", &corpusPath, fileCfg.Analysis.Corpus)
	applyStringConfig(cmd, "charset", &charset, fileCfg.Analysis.Charset)
	applyIntConfig(cmd, "top", &top, fileCfg.Analysis.Top)
	applyIntConfig(cmd, "chunks", &chunks, fileCfg.Analysis.Chunks)
	applyIntConfig(cmd, "max-key-size", &maxKeySize, fileCfg.Analysis.MaxKeySize)

	cfg := model.AnalysisConfig{
		CorpusPath: corpusPath,
		Charset:    charset,
		Top:        top,
		Chunks:     chunks,
		MaxKeySize: maxKeySize,
	}
	if err := validateConfig(cfg); err != nil {
		return model.AnalysisConfig{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.AnalysisConfig) error {
	if cfg.CorpusPath == "" {
		return fmt.Errorf("no corpus configured: pass --corpus, set it in %s, or run: xorcrack fetch",
			config.DefaultConfigPath())
	}
	if cfg.Top <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	if cfg.Chunks < 2 {
		return fmt.Errorf("--chunks must be >= 2")
	}
	if cfg.MaxKeySize <= 1 {
		return fmt.Errorf("--max-key-size must be > 1")
	}
	return nil
}

func breakerParams(cfg model.AnalysisConfig) breaker.Params {
	return breaker.Params{TopN: cfg.Top, Chunks: cfg.Chunks, MaxKeySize: cfg.MaxKeySize}
}

func charsetFromOption(value string) frequency.Charset {
	if value == "" {
		return frequency.Default()
	}
	return frequency.NewCharset(value)
}

// expectedTable builds the baseline frequency table for a corpus,
// consulting the SQLite cache first. Cache failures degrade to a plain
// rebuild rather than failing the analysis.
func expectedTable(ctx context.Context, corpusPath string, cs frequency.Charset) (frequency.Table, error) {
	text, err := corpus.Load(corpusPath)
	if err != nil {
		return nil, err
	}
	checksum := corpus.Checksum(text)
	charsetSig := string(cs.Runes())

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open table cache: %v\n", err)
		return frequency.Build(cs, text), nil
	}
	defer closeStore(st)

	if table, ok, err := st.GetTable(ctx, checksum, charsetSig); err != nil {
		logErrf("failed to read table cache: %v\n", err)
	} else if ok {
		return table, nil
	}

	table := frequency.Build(cs, text)
	key := store.TableKey{Checksum: checksum, Charset: charsetSig, CorpusPath: corpusPath}
	if err := st.SaveTable(ctx, key, table); err != nil {
		logErrf("failed to cache table: %v\n", err)
	}
	return table, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		logErrf("failed to close table cache: %v\n", err)
	}
}

func readCiphertext(args []string, format string) ([]byte, error) {
	raw, err := readInput(args)
	if err != nil {
		return nil, err
	}
	switch format {
	case "base64":
		return codec.DecodeBase64Text(strings.NewReader(string(raw)))
	case "hex":
		return codec.DecodeHex(strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, string(raw)))
	case "raw":
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown ciphertext format %q", format)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return raw, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# xorcrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# corpus = ""            # Baseline corpus file for frequency analysis
# charset = ""           # Characters considered during scoring (default: letters and digits)
# top = %d               # Candidate key sizes to try
# chunks = %d            # Chunks sampled per candidate key size
# max-key-size = %d      # Upper bound for candidate key sizes
`,
		defaultTop,
		defaultChunks,
		defaultMaxKeySize,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
