package main

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/hingebio/hinge/cmd"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootCmdMeta = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childCmdMeta = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// docType codes whether the command is a child, root, etc
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
	"hinge": {
		docType: root,
		title:   "hinge",
	},
	"hinge_junctions": {
		docType: child,
		title:   "junctions",
		parent:  "hinge",
	},
	"hinge_scan": {
		docType:  child,
		title:    "scan",
		navOrder: 1,
		parent:   "hinge",
	},
	"hinge_overhangs": {
		docType:  child,
		title:    "overhangs",
		navOrder: 2,
		parent:   "hinge",
	},
	"hinge_enzymes": {
		docType:  child,
		title:    "enzymes",
		navOrder: 3,
		parent:   "hinge",
	},
	"hinge_config": {
		docType:  child,
		title:    "config",
		navOrder: 4,
		parent:   "hinge",
	},
}

// makeDocs parses the custom commands and outputs Markdown documentation files
func makeDocs() {
	if err := doc.GenMarkdownTreeCustom(cmd.RootCmd, "./docs", filePrepender, linkHandler); err != nil {
		fmt.Println(err.Error())
	}
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	m := metaMap[base]

	switch m.docType {
	case root:
		return fmt.Sprintf(rootCmdMeta, m.title, m.navOrder)
	case child:
		return fmt.Sprintf(childCmdMeta, m.title, m.parent, m.navOrder)
	}

	return ""
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == "hinge" {
		return "/"
	}
	return base
}
