// Public domain.

// Package gnprog implements the gnomon command.
package gnprog

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/soniakeys/exit"

	"github.com/soniakeys/gnomon/internal/gnformat"
	"github.com/soniakeys/gnomon/internal/gnsolver"
)

const versionString = "gnomon version 0.3 Go source."
const copyrightString = "Public domain."

const (
	configName = "gnomon.config"
	sitesName  = "gnomon.sites"
)

func Main() {
	defer exit.Handler()

	cl := parseCommandLine()
	opt := readConfig(cl)
	sites := readSites(cl)

	var f *os.File
	if cl.fnMeas == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(cl.fnMeas)
		if err != nil {
			exit.Log(err)
		}
		defer f.Close()
	}
	if err := run(f, os.Stdout, opt, sites); err != nil {
		exit.Log(err)
	}
}

type recSeq struct {
	r   gnformat.Record
	rch chan string
}

// run solves all records from in and writes results to out in input order.
//
// Records are solved concurrently.  A dispatcher hands each record to a
// worker together with a private result channel and queues the result
// channel for printing, so a fast worker never waits on a slow one and
// output order matches input.
func run(in io.Reader, out io.Writer, opt *outputOptions, sites gnformat.SiteMap) error {
	recCh := make(chan gnformat.Record)
	errCh := make(chan error, 1)
	go splitter(in, recCh, errCh)

	// the buffer must hold at least maxWorkers result channels.
	maxWorkers := runtime.GOMAXPROCS(0)
	prCh := make(chan chan string, maxWorkers*2)
	seqCh := make(chan *recSeq)

	go func() {
		for r := range recCh {
			rch := make(chan string, 1)
			seqCh <- &recSeq{r, rch}
			prCh <- rch
		}
		close(seqCh)
		close(prCh)
	}()
	for n := 0; n < maxWorkers; n++ {
		go solve(seqCh, opt, sites)
	}

	printHeadings(out, opt, sites != nil)
	for rch := range prCh {
		if _, err := fmt.Fprintln(out, <-rch); err != nil {
			// drain so dispatcher and workers can finish
			for rch := range prCh {
				<-rch
			}
			return err
		}
	}
	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// splitter reads records.  Unparseable lines are logged and dropped.
// A read error is sent on errCh and ends input.
func splitter(in io.Reader, recCh chan gnformat.Record, errCh chan error) {
	defer close(recCh)
	for next := gnformat.Splitter(in); ; {
		r, err := next()
		switch err.(type) {
		case nil:
			recCh <- r
			continue
		case *gnformat.RecordError:
			log.Println(err)
			continue
		}
		if err != io.EOF {
			errCh <- err
		}
		return
	}
}

// worker, solves records until seqCh is closed.
func solve(seqCh chan *recSeq, opt *outputOptions, sites gnformat.SiteMap) {
	for s := range seqCh {
		m := s.r.Meas
		if !s.r.HasDecl {
			m.MagneticDeclination = opt.declination
		}
		e, err := gnsolver.Solve(m)
		s.rch <- formatLine(&s.r, e, err, opt, sites) // buffered
	}
}

type commandLine struct {
	dc     string // config file
	ds     string // site file
	dp     string // default path
	fnMeas string // measurements
}

func parseCommandLine() *commandLine {
	var cl commandLine
	if d, err := os.UserConfigDir(); err == nil {
		cl.dp = filepath.Join(d, "gnomon")
	}
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.StringVar(&cl.dc, "c", "", "")
	flag.StringVar(&cl.ds, "s", "", "")
	flag.StringVar(&cl.dp, "p", cl.dp, "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: gnomon [options] <measfile>    estimate positions of measurements in file
       gnomon [options] -             estimate positions of measurements from stdin
       gnomon -h                      display help and quick reference
       gnomon -v                      display version and copyright

Options:
       -c <config-file>
       -s <site-file>
       -p <path>
`)
		if cl.dp > "" {
			os.Stderr.WriteString(`
Default:
       -p=` + cl.dp + "\n")
		}
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	case flag.NArg() != 1:
		flag.Usage()
		os.Exit(1)
	}
	cl.fnMeas = flag.Arg(0)
	return &cl
}

// readConfig returns defaults if no config file was named and the default
// one does not exist.
func readConfig(cl *commandLine) *outputOptions {
	f, err := os.Open(cl.fixupCP(cl.dc, configName))
	if err != nil {
		if cl.dc == "" {
			return defaultOptions()
		}
		exit.Log(err)
	}
	defer f.Close()
	opt, err := parseConfig(f)
	if err != nil {
		exit.Log(err)
	}
	return opt
}

// readSites returns nil if no site file was named and the default one does
// not exist.
func readSites(cl *commandLine) gnformat.SiteMap {
	fn := cl.fixupCP(cl.ds, sitesName)
	if cl.ds == "" {
		if _, err := os.Stat(fn); err != nil {
			return nil
		}
	}
	sites, err := gnformat.ReadSitesFile(fn)
	if err != nil {
		exit.Log(err)
	}
	return sites
}

func (cl *commandLine) fixupCP(fnSpec, fnDefault string) string {
	if fnSpec > "" {
		return fnSpec
	}
	return filepath.Join(cl.dp, fnDefault)
}

func printHelp() {
	fmt.Println(`
Gnomon estimates latitude and longitude from shadow stick measurements.
Input is a file of measurement records, one per line:

   <id> <YYYY-MM-DD> <HH:MM> <stick m> <shadow m> <azimuth> [<magdecl>|-] [<site>]

Date and time are UTC.  Azimuth is the compass bearing from the foot of the
stick to the tip of the shadow.

Config file keywords:
   headings      noheadings
   solar         nosolar
   residual      noresidual
   wrap          nowrap
   decimal       sexagesimal
   copy          nocopy
   precise       noprecise
   declination = <degrees>

For full documentation:
   go doc github.com/soniakeys/gnomon`)
}
