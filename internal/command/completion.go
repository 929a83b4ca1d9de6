package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/sitectl/internal/meta"
)

const bashCompletionScript = `# bash completion for sitectl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_sitectl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "deploy plan policy completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local target="--bucket -b --region -r --account-id"
    local common="$target --color -c --output -o --titles -t"

    case "$cmd" in
        deploy)
            local opts="$common --profile -p --filter -f --strict --timeout --max-attempts --concurrency"
            ;;
        plan)
            local opts="$common"
            ;;
        policy)
            local opts="--bucket -b"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _sitectl sitectl
`

const zshCompletionScript = `#compdef sitectl

_sitectl() {
  local -a cmds
  cmds=(
    'deploy:create the bucket, distribution and index page'
    'plan:show the requests deploy would send'
    'policy:print the public-read bucket policy'
    'completion:generate shell completion script'
  )

  local -a target
  target=(
  '(-b --bucket)'{-b,--bucket}'[bucket name]:bucket'
  '(-r --region)'{-r,--region}'[AWS region]:region'
  '--account-id[expected bucket owner]:account'
  )

  local -a common
  common=(
  $target
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'sitectl commands' cmds
    return
  fi

  case $words[2] in
    deploy)
      _arguments -C \
        $common \
        '(-p --profile)'{-p,--profile}'[shared config profile]:profile' \
        '(-f --filter)'{-f,--filter}'[filters to apply]:filters' \
        '--strict[exit non-zero when a step fails]' \
        '--timeout[deadline for the deployment]:duration' \
        '--max-attempts[attempts per request]:count' \
        '--concurrency[parallel steps]:count'
      ;;
    plan)
      _arguments -C $common
      ;;
    policy)
      _arguments -C '(-b --bucket)'{-b,--bucket}'[bucket name]:bucket'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _sitectl sitectl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: sitectl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "sitectl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
