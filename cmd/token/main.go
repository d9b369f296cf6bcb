// Command token mints an access token for an owner, signed with the server
// secret. It reads the same -s/-t flags and JSON config as the server.
//
//	token -o alice -s secretKey -t 60
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophrecords/internal/flagx"
	"github.com/dmitrijs2005/gophrecords/internal/server/auth"
	"github.com/dmitrijs2005/gophrecords/internal/server/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var owner string
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.StringVar(&owner, "o", "", "owner id")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-o"})); err != nil {
		os.Exit(2)
	}
	if owner == "" {
		fmt.Fprintln(os.Stderr, "usage: token -o <owner> [-s secret] [-t minutes]")
		os.Exit(2)
	}

	tok, err := auth.GenerateToken(owner, []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
