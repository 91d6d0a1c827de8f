// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package prompt collects favorite and unfavorite movie titles from an
// interactive terminal session.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputClosed is returned when the input ends before all answers are read.
var ErrInputClosed = errors.New("input closed")

// Messages printed when a count cannot be used.
const (
	MsgInvalidNumber  = "Invalid input format. Please enter a number."
	MsgNegativeNumber = "Enter a positive number!"
)

// list describes one of the two questions.
type list struct {
	countPrompt string
	itemPrompt  string // formatted with the 1-based position
}

var (
	favoriteList = list{
		countPrompt: "We would like to know some movies that you totally love! How many movies are you ready to mention? If you don't feel like mentioning any, enter 0.",
		itemPrompt:  "Enter favourite movie #%d (spell the title carefully to get a great recommendation): ",
	}
	unfavoriteList = list{
		countPrompt: "\nWe would like to know some of your unfavourite movies as well. How many movies are you ready to mention? If you don't feel like mentioning any, enter 0.",
		itemPrompt:  "Enter unfavourite movie #%d (spell the title carefully to get a great recommendation): ",
	}
)

// Collector asks questions on out and reads answers from in, one per line.
type Collector struct {
	in  *bufio.Reader
	out io.Writer
}

// NewCollector reads answers from r and writes prompts to w.
func NewCollector(r io.Reader, w io.Writer) *Collector {
	return &Collector{in: bufio.NewReader(r), out: w}
}

// Favorites asks how many favorite movies the user wants to name, then
// reads that many titles.
func (c *Collector) Favorites() ([]string, error) {
	return c.collect(favoriteList)
}

// Unfavorites is Favorites for disliked movies.
func (c *Collector) Unfavorites() ([]string, error) {
	return c.collect(unfavoriteList)
}

func (c *Collector) collect(l list) ([]string, error) {
	n, err := c.count(l.countPrompt)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(c.out, l.itemPrompt, i)
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}
		titles = append(titles, strings.TrimSpace(line))
	}
	return titles, nil
}

// count re-prompts until the answer is a non-negative integer.
func (c *Collector) count(question string) (int, error) {
	for {
		fmt.Fprintln(c.out, question)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			fmt.Fprintln(c.out, MsgInvalidNumber)
		case n < 0:
			fmt.Fprintln(c.out, MsgNegativeNumber)
		default:
			return n, nil
		}
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned.
func (c *Collector) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReportFavorites prints how many favorite titles matched the catalog.
func ReportFavorites(w io.Writer, found int) {
	fmt.Fprintf(w, "Found %d of your favorite movies in the database :D\n", found)
}

// ReportUnfavorites prints how many unfavorite titles matched the catalog.
func ReportUnfavorites(w io.Writer, found int) {
	fmt.Fprintf(w, "Found %d of your unfavorite movies in the database!\n", found)
}
