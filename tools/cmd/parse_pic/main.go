// Debug tool: parse one summary screenshot and print the structured record
// as JSON, without touching the database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/disintegration/imaging"

	"lh01/pkg/vision"
)

func main() {
	pattern := flag.String("pattern", "anchor_img.jpg", "anchor pattern image path")
	minConf := flag.Float64("min-conf", vision.DefaultMinConfidence, "minimum anchor match confidence")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: parse_pic [flags] <screenshot>")
	}

	pat, err := imaging.Open(*pattern)
	if err != nil {
		log.Fatalf("open anchor pattern: %v", err)
	}
	p := vision.NewParser(pat, *minConf)

	shot, err := p.ParseFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("parse: %v", err)
	}
	out, err := json.MarshalIndent(shot, "", "    ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(out))
}
