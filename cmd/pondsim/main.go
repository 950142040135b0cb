// Command pondsim drives a pond for a fixed number of ticks (or forever,
// until interrupted), optionally striking lightning at a regular interval,
// and reports a final summary.
package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"
	getopt "github.com/pborman/getopt/v2"

	"pondlife/pond"
)

func main() {
	seed := getopt.Int64Long("seed", 's', 0, "pond PRNG seed")
	width := getopt.IntLong("width", 'W', 640, "grid width")
	height := getopt.IntLong("height", 'H', 480, "grid height")
	ticks := getopt.IntLong("ticks", 't', 0, "ticks to run before exiting (0 = forever)")
	lightningEvery := getopt.IntLong("lightning", 'l', 0, "strike lightning once every N ticks (0 disables)")
	verbose := getopt.BoolLong("verbose", 'v', "enable debug-level logging")
	help := getopt.BoolLong("help", 'h', "show usage")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return
	}

	flag.Set("logtostderr", "true")
	if *verbose {
		flag.Set("v", "1")
	}
	defer glog.Flush()

	p := pond.NewPond(*width, *height, *seed)
	glog.Infof("pond created: %dx%d seed=%d suns=%v", *width, *height, *seed, p.Suns)

	for i := 0; *ticks == 0 || i < *ticks; i++ {
		if *lightningEvery > 0 && i%*lightningEvery == 0 {
			coord := p.Lightning(nil)
			glog.V(1).Infof("lightning struck at %+v", coord)
		}
		p.Tick()
	}

	fmt.Printf("ran %d ticks, %d cells alive\n", *ticks, len(p.Alive))
	glog.Infof("finished: %d ticks, %d alive cells", *ticks, len(p.Alive))
}
