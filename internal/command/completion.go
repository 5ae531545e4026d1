// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/citectl/internal/meta"
)

const bashCompletionScript = `# bash completion for citectl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_citectl()
{
    local cur prev cmd opts
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "shell styles completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}

    case "$prev" in
        --catalog)
            COMPREPLY=( $(compgen -W "bundled remote file:" -- "$cur") )
            return 0
            ;;
        --output|-o)
            COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
            return 0
            ;;
        --style|-s)
            COMPREPLY=( $(compgen -W "$(citectl styles --output raw 2>/dev/null)" -- "$cur") )
            return 0
            ;;
    esac

    case "$cmd" in
        shell)
            opts="--catalog --prompt --style -s"
            ;;
        styles)
            opts="--catalog --color -c --filter -f --output -o --titles -t"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            opts="--help"
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _citectl citectl
`

const zshCompletionScript = `#compdef citectl

_citectl_styles() {
  local -a styles
  styles=(${(f)"$(citectl styles --output raw 2>/dev/null)"})
  _describe -t styles 'citation styles' styles
}

_citectl() {
  local -a cmds
  cmds=(
    'shell:interactive citation style shell'
    'styles:list supported citation styles'
    'completion:generate shell completion script'
  )

  local -a catalog
  catalog=(
  '--catalog[style catalog]:catalog:(bundled remote file\:)'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'citectl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    shell)
      _arguments -C \
        $catalog \
        '--prompt[shell prompt]:prompt' \
        '(-s --style)'{-s,--style}'[initial style]:style:_citectl_styles'
      ;;
    styles)
      _arguments -C \
        $catalog \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '::filter:_citectl_styles'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _citectl citectl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: citectl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "citectl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
