package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-blocks-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Configure logging to stderr (stdout is for MCP protocol and convert output)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-blocks-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "convert":
			os.Exit(runConvert(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	server.Version = Version
	if os.Getenv("IMAGE_BLOCKS_LOG_LEVEL") == "debug" {
		log.Printf("Image Blocks MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("image-blocks-mcp - turn images into level editor objects")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  image-blocks-mcp                      Serve MCP over stdin/stdout")
	fmt.Println("  image-blocks-mcp convert [flags] IMG  Print the object string for IMG")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Run 'image-blocks-mcp convert -h' for convert flags.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_BLOCKS_LOG_LEVEL=debug    Enable debug logging")
}
