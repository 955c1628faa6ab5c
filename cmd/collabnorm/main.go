// collabnorm normalizes author fields, one per line, the way collabnet does
// before counting collaborations. Useful to check how names from an export
// will be matched.
//
//	$ cut -f 2 savedrecs.txt | collabnorm -s wos
//	SMITH, J|DOE, A
package main

import (
	"context"
	"flag"
	"os"

	"github.com/miku/collabnet/normal"
	log "github.com/sirupsen/logrus"
)

var (
	style      = flag.String("s", "wos", "normalization style: scopus or wos")
	separator  = flag.String("d", ";", "author separator after normalization")
	joiner     = flag.String("j", "|", "join normalized authors with this string")
	raw        = flag.Bool("r", false, "only normalize, do not split into authors")
	numWorkers = flag.Int("w", 0, "number of workers, defaults to number of CPUs")
)

func main() {
	flag.Parse()
	p, err := normal.AuthorPipeline(normal.Style(*style))
	if err != nil {
		log.Fatal(err)
	}
	f := normal.Tokens(p, *separator, *joiner)
	if *raw {
		f = p.Normalize
	}
	proc := normal.NewProcessor(f, normal.WithWorkers(*numWorkers))
	if err := proc.Process(context.Background(), os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
