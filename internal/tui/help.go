package tui

// helpText is the static content shown in the help popup, toggled by "?".
// Grounded on the teacher's --help keyboard-shortcuts listing, trimmed to
// the bindings this keymap actually dispatches.
const helpText = `dtop - keyboard shortcuts

  Container list:
    up/k, down/j       Move selection
    enter              Open action menu
    l                  View logs
    s                  Cycle sort field
    a                  Toggle show-all (include stopped)
    o                  Open Dozzle in browser
    /                  Filter containers

  Action menu:
    up/k, down/j       Move selection
    enter              Run selected action
    esc                Cancel

  Log view:
    up/k, down/j       Scroll one line
    g / G              Jump to top / bottom
    ctrl+u, b          Page up
    ctrl+d, space      Page down
    esc                Back to container list

  Global:
    ?                  Toggle this help
    q, ctrl+c          Quit
`
