package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// docType codes whether the command is the root or a child
type docType int

const (
	root docType = iota
	child
)

// meta is for describing the position/info for a command doc page
type meta struct {
	docType  docType
	title    string
	navOrder int
	parent   string
}

// map from the base Markdown file name to its build meta
var metaMap = map[string]meta{
	"sdm":        {root, "sdm", 0, ""},
	"sdm_design": {child, "design", 0, "sdm"},
	"sdm_tm":     {child, "tm", 1, "sdm"},
	"sdm_codon":  {child, "codon", 2, "sdm"},
}

var docsDir string

// docsCmd writes Markdown documentation for every command
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Write Markdown documentation for the commands",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		RootCmd.DisableAutoGenTag = true
		if err := doc.GenMarkdownTreeCustom(RootCmd, docsDir, filePrepender, linkHandler); err != nil {
			return fmt.Errorf("failed to write docs to %s: %w", docsDir, err)
		}
		return nil
	},
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	m, ok := metaMap[docBase(filename)]
	if !ok {
		return ""
	}

	switch m.docType {
	case root:
		return fmt.Sprintf(rootPage, m.title, m.navOrder)
	case child:
		return fmt.Sprintf(childPage, m.title, m.parent, m.navOrder)
	}
	return ""
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	base := docBase(filename)
	if base == "sdm" {
		return "/"
	}
	return base
}

func docBase(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}

func init() {
	RootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringVar(&docsDir, "dir", "./docs", "directory to write the Markdown files to")
}
