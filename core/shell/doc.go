// Package shell turns a line of input into something that can be executed.
//
// Processing follows a reduced form of
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
//
// 1. The shell breaks the input into tokens on runs of whitespace. There are no
// quotes, escapes or expansions.
//
// 2. The tokens are split into the argument vector and the redirection/pipe
// clause. At most one pipe is allowed.
//
// 3. Redirection and execution happen elsewhere (see core/proc).
package shell
