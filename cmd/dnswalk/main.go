// SPDX-License-Identifier: GPL-3.0-or-later

// Command dnswalk resolves a domain name by walking the DNS delegation
// hierarchy and prints every reply received along the way.
//
// Usage:
//
//	dnswalk <domain-name> [root-dns-ip]
//
// Without a server argument the walk starts from a.root-servers.net.
// Timeouts and dead-end referrals are reported on stdout and do not
// change the exit status; only invocation errors exit nonzero.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bassosimone/dnswalk"
	"github.com/miekg/dns"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <domain-name> [root-dns-ip]\n", os.Args[0])
		os.Exit(1)
	}
	domain := os.Args[1]
	server := dnswalk.RootServers[0]
	if len(os.Args) == 3 {
		server = os.Args[2]
	}

	transport, err := dnswalk.NewUDPTransport(dnswalk.DefaultTimeout)
	if err != nil {
		log.Fatalf("cannot open transport: %v", err)
	}
	defer transport.Close()

	reso := &dnswalk.Resolver{
		Transport:  transport,
		OnQuery:    printQuery,
		OnResponse: printResponse,
	}
	_, err = reso.Run(domain, server)
	switch {
	case err == nil:
		// The answers were already printed by printResponse.
	case errors.Is(err, dnswalk.ErrReplyTimeout):
		fmt.Println("Reply timed out. Stopping resolution.")
	case errors.Is(err, dnswalk.ErrNoNextServer):
		fmt.Println("No intermediate DNS server IP found. Stopping resolution.")
	default:
		fmt.Printf("Resolution failed: %v\n", err)
	}
}

func printQuery(server string) {
	fmt.Println("----------------------------------------------------------------")
	fmt.Printf("DNS server to query: %s\n", server)
}

func printResponse(server string, resp *dnswalk.Response) {
	fmt.Println("Reply received. Content overview:")
	fmt.Printf(" %d Answers.\n", len(resp.Answers))
	fmt.Printf(" %d Intermediate Name Servers.\n", len(resp.Authorities))
	fmt.Printf(" %d Additional Information Records.\n", len(resp.Additionals))
	printSection("Answers section:", resp.Answers)
	printSection("Authority Section:", resp.Authorities)
	printSection("Additional Information Section:", resp.Additionals)
}

func printSection(title string, records []dnswalk.ResourceRecord) {
	fmt.Println(title)
	if len(records) == 0 {
		fmt.Println(" ")
		return
	}
	for _, rr := range records {
		switch rr.Type {
		case dns.TypeA:
			fmt.Printf(" Name : %s IP : %s\n", rr.Name, rr.Addr)
		case dns.TypeNS:
			fmt.Printf(" Name : %s  Name Server: %s\n", rr.Name, rr.Target)
		default:
			fmt.Printf(" Name : %s  Type: %d\n", rr.Name, rr.Type)
		}
	}
}
