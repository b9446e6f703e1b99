// Command bloomdbg is the assembler's entry point, built on
// github.com/jwaldrip/odin/cli the way the teacher's ga.go wires its own
// subcommands: a top-level app with global flags, and one
// DefineSubCommand per operation with its own flag set.
package main

import (
	"log"
	"os"
	"strings"

	"github.com/jwaldrip/odin/cli"

	"bloomdbg/internal/assemble"
	"bloomdbg/internal/bloomfilter"
	"bloomdbg/internal/cfbuild"
	"bloomdbg/internal/config"
	"bloomdbg/internal/dbg"
	"bloomdbg/internal/fastaio"
	"bloomdbg/internal/graphviz"
)

const defaultK = 32

var app = cli.New("1.0.0", "memory-efficient Bloom-filter de Bruijn assembler", func(c cli.Command) {})

func init() {
	app.DefineIntFlag("K", defaultK, "kmer length")
	app.DefineIntFlag("H", 2, "number of Bloom filter hash functions")
	app.DefineBoolFlag("v", false, "verbose progress output")

	bf := app.DefineSubCommand("buildfilter", "build the good-kmer Bloom filter from FASTA reads", buildFilter)
	{
		bf.DefineStringFlag("reads", "", "input FASTA file (reads)")
		bf.DefineStringFlag("out", "good.cf", "output filter file")
		bf.DefineIntFlag("genomeSize", 1<<24, "expected genome size in bits for the output filter")
		bf.DefineIntFlag("minKmerFreq", cfbuild.DefaultMinKmerFreq, "min observed kmer frequency to promote as good")
	}

	asm := app.DefineSubCommand("assemble", "assemble FASTA reads against a pre-built good-kmer filter", runAssemble)
	{
		asm.DefineStringFlag("filter", "", "input good-kmer filter file")
		asm.DefineStringFlag("reads", "", "input FASTA file (reads)")
		asm.DefineStringFlag("out", "contigs.fa", "output FASTA file (contigs)")
		asm.DefineIntFlag("genomeSize", 1<<24, "expected genome size in bits for the assembled-kmer filter")
		asm.DefineIntFlag("minBranchLen", 0, "min distinct vertices a candidate branch must reach (default k+1)")
	}

	gv := app.DefineSubCommand("graphviz", "dump a breadth-first slice of the implicit graph as GraphViz dot", runGraphviz)
	{
		gv.DefineStringFlag("filter", "", "input good-kmer filter file")
		gv.DefineStringFlag("seed", "", "seed sequence to start the traversal from")
		gv.DefineStringFlag("out", "graph.dot", "output .dot file")
	}
}

func main() {
	app.Start()
}

func globalK(c cli.Command) (k, numHashes uint) {
	kv, ok := c.Parent().Flag("K").Get().(int)
	if !ok || kv <= 0 {
		log.Fatalf("[bloomdbg] args 'K': %v set error\n", c.Parent().Flag("K").String())
	}
	hv, ok := c.Parent().Flag("H").Get().(int)
	if !ok || hv <= 0 {
		log.Fatalf("[bloomdbg] args 'H': %v set error\n", c.Parent().Flag("H").String())
	}
	return uint(kv), uint(hv)
}

func requireString(c cli.Command, flag string) string {
	v := c.Flag(flag).String()
	if v == "" {
		log.Fatalf("[bloomdbg] required flag '%s' not set\n", flag)
	}
	return v
}

func buildFilter(c cli.Command) {
	k, numHashes := globalK(c)
	readsFn := requireString(c, "reads")
	outFn := requireString(c, "out")
	genomeSize, _ := c.Flag("genomeSize").Get().(int)
	minKmerFreq, _ := c.Flag("minKmerFreq").Get().(int)

	in, err := fastaio.Open(readsFn)
	if err != nil {
		log.Fatalf("[bloomdbg buildfilter] open %s: %v\n", readsFn, err)
	}

	cfg := cfbuild.Config{
		K:           k,
		NumHashes:   numHashes,
		GenomeSize:  uint(genomeSize),
		MinKmerFreq: uint16(minKmerFreq),
	}
	good, err := cfbuild.Build(cfg, in)
	if err != nil {
		log.Fatalf("[bloomdbg buildfilter] build: %v\n", err)
	}

	outfp, err := os.Create(outFn)
	if err != nil {
		log.Fatalf("[bloomdbg buildfilter] create %s: %v\n", outFn, err)
	}
	defer outfp.Close()
	if err := good.Save(outfp); err != nil {
		log.Fatalf("[bloomdbg buildfilter] save: %v\n", err)
	}
	log.Printf("[bloomdbg buildfilter] wrote %s (k=%d, h=%d, bits=%d)\n", outFn, good.KmerSize(), good.HashNum(), good.Size())
}

func runAssemble(c cli.Command) {
	k, numHashes := globalK(c)
	filterFn := requireString(c, "filter")
	readsFn := requireString(c, "reads")
	outFn := requireString(c, "out")
	genomeSize, _ := c.Flag("genomeSize").Get().(int)
	minBranchLen, _ := c.Flag("minBranchLen").Get().(int)
	if minBranchLen <= 0 {
		minBranchLen = config.DefaultMinBranchLen(k)
	}
	verbose, _ := c.Parent().Flag("v").Get().(bool)

	infp, err := os.Open(filterFn)
	if err != nil {
		log.Fatalf("[bloomdbg assemble] open %s: %v\n", filterFn, err)
	}
	good, err := bloomfilter.Load(infp)
	infp.Close()
	if err != nil {
		log.Fatalf("[bloomdbg assemble] load filter: %v\n", err)
	}

	cfg := config.AssemblyConfig{
		K:            k,
		NumHashes:    numHashes,
		GenomeSize:   uint(genomeSize),
		MinBranchLen: minBranchLen,
		Verbose:      verbose,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[bloomdbg assemble] %v\n", err)
	}
	if err := cfg.CheckParameterMismatch(good); err != nil {
		log.Fatalf("[bloomdbg assemble] %v\n", err)
	}

	in, err := fastaio.Open(readsFn)
	if err != nil {
		log.Fatalf("[bloomdbg assemble] open %s: %v\n", readsFn, err)
	}
	outfp, err := os.Create(outFn)
	if err != nil {
		log.Fatalf("[bloomdbg assemble] create %s: %v\n", outFn, err)
	}
	defer outfp.Close()
	out := fastaio.NewWriter(outfp)

	counters, err := assemble.Assemble(cfg, good, in, out)
	if err != nil {
		log.Fatalf("[bloomdbg assemble] %v\n", err)
	}
	log.Printf("[bloomdbg assemble] readsProcessed:%d readsExtended:%d basesAssembled:%d\n",
		counters.ReadsProcessed, counters.ReadsExtended, counters.BasesAssembled)
}

func runGraphviz(c cli.Command) {
	k, numHashes := globalK(c)
	filterFn := requireString(c, "filter")
	seed := requireString(c, "seed")
	outFn := requireString(c, "out")

	infp, err := os.Open(filterFn)
	if err != nil {
		log.Fatalf("[bloomdbg graphviz] open %s: %v\n", filterFn, err)
	}
	good, err := bloomfilter.Load(infp)
	infp.Close()
	if err != nil {
		log.Fatalf("[bloomdbg graphviz] load filter: %v\n", err)
	}
	if good.KmerSize() != k || good.HashNum() != numHashes {
		log.Fatalf("[bloomdbg graphviz] filter k=%d,h=%d does not match -K=%d,-H=%d\n",
			good.KmerSize(), good.HashNum(), k, numHashes)
	}

	trimmed := dbg.TrimSeq([]byte(strings.ToUpper(seed)), good)
	if len(trimmed) < int(k) {
		log.Fatalf("[bloomdbg graphviz] seed sequence has no run of %d consecutive good kmers\n", k)
	}

	p := dbg.SeqToPath(trimmed, int(k), int(numHashes))
	start := p[0]
	graph := dbg.New(good)

	outfp, err := os.Create(outFn)
	if err != nil {
		log.Fatalf("[bloomdbg graphviz] create %s: %v\n", outFn, err)
	}
	defer outfp.Close()

	nodes, edges := graphviz.DumpBFS(start, graph, outfp)
	log.Printf("[bloomdbg graphviz] wrote %s (nodes:%d edges:%d)\n", outFn, nodes, edges)
}
