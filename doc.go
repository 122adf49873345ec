// Package stackcalc implements an arithmetic expression engine built as a tiny
// compiler and stack machine.
//
// A program is one expression per line, written with integers, decimal
// literals, parentheses, unary + and -, and the binary operators + - * / %
// and **. "-2**2" is the same as "-(2**2)", and "2**3**2" is "2**(3**2)".
// Integers have arbitrary precision. Division always produces a float, and any
// operation with a float operand produces a float.
//
// Evaluation runs in four stages: Tokenize scans tokens, ParseProgram builds a
// syntax tree, Compile lowers the tree to straight-line Bytecode, and a
// Machine executes it, recording the result of each line. Eval and EvalString
// run the whole pipeline at once.
package stackcalc
