package main

import (
	"errors"
	"fmt"
	"strings"

	"goklass/klass"
	"goklass/schema"
)

func inspectCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("klass inspect: schema path required")
	}
	h, err := schema.Load(args[0], defaultRegistry())
	if err != nil {
		return err
	}
	only := ""
	if len(args) > 1 {
		only = args[1]
	}
	out, err := renderHierarchy(h, only)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func renderHierarchy(h *schema.Hierarchy, only string) (string, error) {
	if only != "" {
		cls, ok := h.Class(only)
		if !ok {
			return "", fmt.Errorf("unknown class %s", only)
		}
		return renderClass(cls), nil
	}
	sections := make([]string, 0, len(h.Order))
	for _, name := range h.Order {
		cls, _ := h.Class(name)
		sections = append(sections, renderClass(cls))
	}
	return strings.Join(sections, "\n"), nil
}

func renderClass(cls *klass.Class) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(cls.Name()))
	if base := cls.Base(); base != nil {
		b.WriteString(mutedStyle.Render(" < " + base.Name()))
	}
	if mixins := cls.Mixins(); len(mixins) > 0 {
		names := make([]string, len(mixins))
		for i, m := range mixins {
			names[i] = m.Name()
		}
		b.WriteString(mutedStyle.Render(" [" + strings.Join(names, ", ") + "]"))
	}
	b.WriteString("\n")

	for _, name := range cls.MemberNames() {
		v, _ := cls.Member(name)
		line := fmt.Sprintf("  %s  %s", memberStyle.Render(name), mutedStyle.Render(v.Kind().String()))
		if v.Kind() != klass.KindMethod && v.Kind() != klass.KindAccessor {
			line += " " + resultStyle.Render(v.String())
		}
		b.WriteString(line + "\n")
	}
	for _, name := range cls.StaticNames() {
		v, _ := cls.Static(name)
		b.WriteString(fmt.Sprintf("  %s  %s\n", staticStyle.Render("."+name), mutedStyle.Render("static "+v.Kind().String())))
	}

	return b.String()
}
