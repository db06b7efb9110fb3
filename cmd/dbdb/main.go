package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"github.com/infinivision/dbdb/constant"
	"github.com/infinivision/dbdb/db"
	"github.com/infinivision/dbdb/errmsg"
	"github.com/pkg/errors"
)

const usage = `Usage:
dbdb ls FILE
dbdb root FILE
dbdb show FILE ADDR
dbdb put FILE < PAYLOAD
dbdb commit FILE ADDR
`

type command struct {
	name string
	file string
	addr uint64
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// parse checks the whole command line before anything touches the file.
func parse(args []string) (*command, error) {
	if len(args) < 2 {
		return nil, errors.New(usage)
	}
	c := &command{name: args[0], file: args[1]}
	switch c.name {
	case "ls", "root", "put":
	case "show", "commit":
		if len(args) < 3 {
			return nil, errors.New(usage)
		}
		addr, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return nil, errors.Errorf("can not parse address: %s", args[2])
		}
		c.addr = addr
	default:
		return nil, errors.Errorf("unknown command %s\n%s", c.name, usage)
	}
	return c, nil
}

func (c *command) readOnly() bool {
	return c.name != "put" && c.name != "commit"
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	c, err := parse(args)
	if err != nil {
		return err
	}
	if c.readOnly() {
		if _, err := os.Stat(c.file); err != nil {
			return errors.Wrapf(err, "can not open %s", c.file)
		}
	}
	cfg := db.DefaultConfig()
	cfg.FileName = c.file
	d, err := db.Open(cfg)
	if err != nil {
		return errors.Wrapf(err, "can not open %s", c.file)
	}
	err = c.exec(d, stdin, stdout)
	if cerr := d.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "%s %s", c.name, c.file)
	}
	return nil
}

func (c *command) exec(d db.DB, stdin io.Reader, stdout io.Writer) error {
	switch c.name {
	case "ls":
		return list(d, stdout)
	case "root":
		root, err := d.GetRootAddress()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%d\n", root)
		return err
	case "show":
		blob, err := d.Read(c.addr)
		if err != nil {
			return err
		}
		_, err = stdout.Write(blob)
		return err
	case "put":
		blob, err := ioutil.ReadAll(stdin)
		if err != nil {
			return err
		}
		addr, err := d.Write(blob)
		if err != nil {
			return err
		}
		if err := d.Unlock(); err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%d\n", addr)
		return err
	default:
		return d.CommitRootAddress(c.addr)
	}
}

func list(d db.DB, w io.Writer) error {
	root, err := d.GetRootAddress()
	if err != nil {
		return err
	}
	itr, err := d.NewForwardIterator(0)
	if err != nil {
		return err
	}
	defer itr.Close()
	for itr.Valid() {
		mark := " "
		if root != constant.NoRoot && itr.Address() == root {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %d %d\n", mark, itr.Address(), itr.Length()); err != nil {
			return err
		}
		if err := itr.Next(); err != nil && errors.Cause(err) != errmsg.ScanEnd {
			return err
		}
	}
	return nil
}
