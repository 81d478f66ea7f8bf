package decl

// Op names one concretely typed operation. Overloads are resolved while
// parsing so "+" on scalars and "+" on vectors are different ops.
type Op int

const (
	OpInvalid Op = iota

	// scalar arithmetic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpNeg

	// vector arithmetic
	OpAddVec
	OpSubVec
	OpMulVec
	OpScaleVec
	OpDivVec
	OpNegVec

	// comparisons
	OpLT
	OpGT
	OpLE
	OpGE
	OpEQ
	OpNE
	OpEQVec
	OpNEVec

	// boolean
	OpAnd
	OpOr
	OpNot
	OpTestScalar
	OpTestVec

	// scalar functions
	OpCos
	OpSin
	OpTan
	OpAcos
	OpAsin
	OpAtan
	OpAtan2
	OpCosh
	OpSinh
	OpTanh
	OpSqrt
	OpExp
	OpLog
	OpLog10
	OpCeil
	OpFloor
	OpAbs
	OpRand

	// vector functions
	OpDot
	OpCross
	OpLength
	OpNormalize
	OpVec3

	numOps
)

// OpInfo describes the spelling and signature of an op.
type OpInfo struct {
	Name     string
	Symbol   string // operator spelling, empty when only a function form exists
	Func     string // function spelling, empty when only an operator form exists
	Operands []ValueType
	Result   ValueType
}

const (
	tScalar = ScalarType
	tVector = VectorType
	tBool   = BoolType
)

var (
	sigSS = []ValueType{tScalar, tScalar}
	sigVV = []ValueType{tVector, tVector}
	sigBB = []ValueType{tBool, tBool}
)

var opTable = [numOps]OpInfo{
	OpInvalid: {Name: "Invalid"},

	OpAdd: {Name: "Add", Symbol: "+", Operands: sigSS, Result: tScalar},
	OpSub: {Name: "Sub", Symbol: "-", Operands: sigSS, Result: tScalar},
	OpMul: {Name: "Mul", Symbol: "*", Operands: sigSS, Result: tScalar},
	OpDiv: {Name: "Div", Symbol: "/", Operands: sigSS, Result: tScalar},
	OpMod: {Name: "Mod", Symbol: "%", Func: "fmod", Operands: sigSS, Result: tScalar},
	OpPow: {Name: "Pow", Symbol: "^", Func: "pow", Operands: sigSS, Result: tScalar},
	OpNeg: {Name: "Neg", Symbol: "-", Operands: []ValueType{tScalar}, Result: tScalar},

	OpAddVec:   {Name: "AddVec", Symbol: "+", Operands: sigVV, Result: tVector},
	OpSubVec:   {Name: "SubVec", Symbol: "-", Operands: sigVV, Result: tVector},
	OpMulVec:   {Name: "MulVec", Symbol: "*", Operands: sigVV, Result: tVector},
	OpScaleVec: {Name: "ScaleVec", Symbol: "*", Operands: []ValueType{tVector, tScalar}, Result: tVector},
	OpDivVec:   {Name: "DivVec", Symbol: "/", Operands: []ValueType{tVector, tScalar}, Result: tVector},
	OpNegVec:   {Name: "NegVec", Symbol: "-", Operands: []ValueType{tVector}, Result: tVector},

	OpLT:    {Name: "LT", Symbol: "<", Operands: sigSS, Result: tBool},
	OpGT:    {Name: "GT", Symbol: ">", Operands: sigSS, Result: tBool},
	OpLE:    {Name: "LE", Symbol: "<=", Operands: sigSS, Result: tBool},
	OpGE:    {Name: "GE", Symbol: ">=", Operands: sigSS, Result: tBool},
	OpEQ:    {Name: "EQ", Symbol: "==", Operands: sigSS, Result: tBool},
	OpNE:    {Name: "NE", Symbol: "!=", Operands: sigSS, Result: tBool},
	OpEQVec: {Name: "EQVec", Symbol: "==", Operands: sigVV, Result: tBool},
	OpNEVec: {Name: "NEVec", Symbol: "!=", Operands: sigVV, Result: tBool},

	OpAnd:        {Name: "And", Symbol: "&&", Operands: sigBB, Result: tBool},
	OpOr:         {Name: "Or", Symbol: "||", Operands: sigBB, Result: tBool},
	OpNot:        {Name: "Not", Symbol: "!", Operands: []ValueType{tBool}, Result: tBool},
	OpTestScalar: {Name: "TestScalar", Operands: []ValueType{tScalar}, Result: tBool},
	OpTestVec:    {Name: "TestVec", Operands: []ValueType{tVector}, Result: tBool},

	OpCos:   {Name: "Cos", Func: "cos", Operands: []ValueType{tScalar}, Result: tScalar},
	OpSin:   {Name: "Sin", Func: "sin", Operands: []ValueType{tScalar}, Result: tScalar},
	OpTan:   {Name: "Tan", Func: "tan", Operands: []ValueType{tScalar}, Result: tScalar},
	OpAcos:  {Name: "Acos", Func: "acos", Operands: []ValueType{tScalar}, Result: tScalar},
	OpAsin:  {Name: "Asin", Func: "asin", Operands: []ValueType{tScalar}, Result: tScalar},
	OpAtan:  {Name: "Atan", Func: "atan", Operands: []ValueType{tScalar}, Result: tScalar},
	OpAtan2: {Name: "Atan2", Func: "atan2", Operands: sigSS, Result: tScalar},
	OpCosh:  {Name: "Cosh", Func: "cosh", Operands: []ValueType{tScalar}, Result: tScalar},
	OpSinh:  {Name: "Sinh", Func: "sinh", Operands: []ValueType{tScalar}, Result: tScalar},
	OpTanh:  {Name: "Tanh", Func: "tanh", Operands: []ValueType{tScalar}, Result: tScalar},
	OpSqrt:  {Name: "Sqrt", Func: "sqrt", Operands: []ValueType{tScalar}, Result: tScalar},
	OpExp:   {Name: "Exp", Func: "exp", Operands: []ValueType{tScalar}, Result: tScalar},
	OpLog:   {Name: "Log", Func: "log", Operands: []ValueType{tScalar}, Result: tScalar},
	OpLog10: {Name: "Log10", Func: "log10", Operands: []ValueType{tScalar}, Result: tScalar},
	OpCeil:  {Name: "Ceil", Func: "ceil", Operands: []ValueType{tScalar}, Result: tScalar},
	OpFloor: {Name: "Floor", Func: "floor", Operands: []ValueType{tScalar}, Result: tScalar},
	OpAbs:   {Name: "Abs", Func: "fabs", Operands: []ValueType{tScalar}, Result: tScalar},
	OpRand:  {Name: "Rand", Func: "rand", Operands: []ValueType{tScalar}, Result: tScalar},

	OpDot:       {Name: "Dot", Func: "dot", Operands: sigVV, Result: tScalar},
	OpCross:     {Name: "Cross", Func: "cross", Operands: sigVV, Result: tVector},
	OpLength:    {Name: "Length", Func: "length", Operands: []ValueType{tVector}, Result: tScalar},
	OpNormalize: {Name: "Normalize", Func: "normalize", Operands: []ValueType{tVector}, Result: tVector},
	OpVec3:      {Name: "Vec3", Func: "vec3f", Operands: []ValueType{tScalar, tScalar, tScalar}, Result: tVector},
}

func (op Op) Info() OpInfo {
	if op <= OpInvalid || op >= numOps {
		return opTable[OpInvalid]
	}
	return opTable[op]
}

func (op Op) String() string   { return op.Info().Name }
func (op Op) Result() ValueType { return op.Info().Result }
func (op Op) Arity() int        { return len(op.Info().Operands) }

func matches(want, got []ValueType) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

// LookupOperator finds the operator overload for symbol that accepts exactly
// the given operand types.
func LookupOperator(symbol string, operands ...ValueType) (Op, bool) {
	for op := OpInvalid + 1; op < numOps; op++ {
		info := opTable[op]
		if info.Symbol == symbol && matches(info.Operands, operands) {
			return op, true
		}
	}
	return OpInvalid, false
}

// LookupFunc finds the function named name accepting the given argument types.
func LookupFunc(name string, args ...ValueType) (Op, bool) {
	for op := OpInvalid + 1; op < numOps; op++ {
		info := opTable[op]
		if info.Func == name && matches(info.Operands, args) {
			return op, true
		}
	}
	return OpInvalid, false
}

// FuncSignature returns the operand types of the function called name.
func FuncSignature(name string) ([]ValueType, bool) {
	for op := OpInvalid + 1; op < numOps; op++ {
		if opTable[op].Func == name {
			return opTable[op].Operands, true
		}
	}
	return nil, false
}
