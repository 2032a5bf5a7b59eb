package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lh01/pkg/vision"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

// parser is the shared screenshot pipeline; nil when the anchor pattern
// asset is missing, in which case uploads are rejected with 503.
var parser *vision.Parser

func main() {
	// Auto-load ./.env if present (no external dependency) before reading vars
	loadDotEnv()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	// Support a lightweight migrate command: `./lh01_app migrate`
	// It runs AutoMigrate and seeding then exits.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()
	initParser()

	r := gin.Default()
	r.Use(cors.Default())

	setupRoutes(r)

	r.Run(":5000")
}

// initParser loads the anchor pattern asset once at startup. The server
// still runs without it; only uploads are disabled.
func initParser() {
	path := os.Getenv("ANCHOR_PATTERN")
	if path == "" {
		path = "anchor_img.jpg"
	}
	pattern, err := imaging.Open(path)
	if err != nil {
		log.Printf("anchor pattern %s not loaded (%v); screenshot uploads disabled", path, err)
		return
	}
	minConf := vision.DefaultMinConfidence
	if v := os.Getenv("ANCHOR_MIN_CONF"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			minConf = f
		}
	}
	parser = vision.NewParser(pattern, minConf)
	log.Printf("anchor pattern loaded from %s (min confidence %.2f)", path, minConf)
}

// loadDotEnv loads key=value pairs from a local .env file into the environment
// without overwriting variables that are already set. Lines starting with # are ignored.
func loadDotEnv() {
	path := ".env"
	if _, err := os.Stat(path); err != nil {
		return // no .env file
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// split on first '='
		if eq := strings.IndexByte(line, '='); eq > 0 {
			key := strings.TrimSpace(line[:eq])
			val := strings.TrimSpace(line[eq+1:])
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	}
}
