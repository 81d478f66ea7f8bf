package runtime

import (
	"slices"

	"github.com/panyam/vecalc/decl"
	"github.com/panyam/vecalc/parser"
)

// Calculator owns an expression, its inputs and a register file. The
// expression is compiled lazily and recompiled only after it changes. An
// expression that fails to compile leaves the calculator with no program,
// and evaluation produces nothing until the expression is fixed.
type Calculator struct {
	Inputs Inputs

	driver     *Driver
	regs       *RegisterFile
	expression []string
	version    uint64

	compiledVersion uint64
	program         *decl.Program
	compileErr      error
}

// NewCalculator creates a calculator running on driver, or on a default
// driver when nil.
func NewCalculator(driver *Driver) *Calculator {
	if driver == nil {
		driver = NewDriver(nil)
	}
	return &Calculator{driver: driver, regs: NewRegisterFile()}
}

// SetExpression replaces the source, one element per line.
func (c *Calculator) SetExpression(lines ...string) {
	c.expression = slices.Clone(lines)
	c.version++
}

func (c *Calculator) Expression() []string { return slices.Clone(c.expression) }

// Version changes every time the expression is replaced.
func (c *Calculator) Version() uint64 { return c.version }

func (c *Calculator) Driver() *Driver { return c.driver }

// Program returns the compiled expression, compiling it if the source
// changed since the last call.
func (c *Calculator) Program() (*decl.Program, error) {
	if c.compiledVersion != c.version {
		c.compiledVersion = c.version
		c.program, c.compileErr = parser.ParseLines(c.expression)
		if c.compileErr != nil {
			Warn("expression does not compile, evaluation disabled: %v", c.compileErr)
		} else {
			Debug("compiled %d statement(s), %s", len(c.program.Statements), c.program.Usage)
		}
	}
	if c.compileErr != nil {
		return nil, c.compileErr
	}
	if c.program == nil {
		return nil, ErrNoProgram
	}
	return c.program, nil
}

// Evaluate runs the program over the current inputs. Without a program the
// result is empty.
func (c *Calculator) Evaluate() Outputs {
	prog, err := c.Program()
	if err != nil {
		return Outputs{}
	}
	return c.driver.Run(prog, c.regs, c.Inputs)
}
