// Command portfolioctl manages portfolio projects and the resume from a terminal.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
