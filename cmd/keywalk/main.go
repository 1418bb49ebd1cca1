// Command keywalk enumerates or counts the keyboard-walk password space
// described by a configuration file.
//
// Usage:
//
//	keywalk --arrangement=qwerty.cfg --keys=ab --min=4 --max=8 --logfile=run.log
//	keywalk --arrangement=qwerty.cfg --keys=ab --min=4 --max=8 --logfile=run.log --dryrun
//	keywalk --arrangement=qwerty.cfg --keys=ab --min=4 --max=8 --logfile=run.log --restart=abab
package main

import "os"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}
