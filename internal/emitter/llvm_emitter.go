//go:build llvm

package emitter

import (
	"math"
	"strings"

	"github.com/kievzenit/strata/internal/ast"
	"tinygo.org/x/go-llvm"
)

type libcFunc struct {
	name  string
	arity int
}

var libmFuncs = []libcFunc{
	{"sqrt", 1},
	{"pow", 2},
	{"fabs", 1},
	{"floor", 1},
	{"ceil", 1},
}

var mathBuiltins = map[string]string{
	"sqrt":  "sqrt",
	"pow":   "pow",
	"abs":   "fabs",
	"floor": "floor",
	"ceil":  "ceil",
}

const randMaxPlusOne = 2147483648.0

type llvmVariable struct {
	ptr     llvm.Value
	mutable bool
}

// LLVMEmitter lowers a program into the body of an i32 main. Every value is
// a double in the same numeric encoding the interpreter uses.
type LLVMEmitter struct {
	program *ast.Program

	funcsMap  map[string]llvm.Value
	userFuncs map[string]struct{}
	scopes    []map[string]llvmVariable

	context    llvm.Context
	module     llvm.Module
	builder    llvm.Builder
	doubleType llvm.Type

	currentFunc            llvm.Value
	currentAllocBasicBlock llvm.BasicBlock
	exitBasicBlock         llvm.BasicBlock

	controlFlowHappen        bool
	loopsContinueBasicBlocks []llvm.BasicBlock

	loopsBreakBasicBlocks []llvm.BasicBlock

	nextBasicBlock llvm.BasicBlock
}

func NewLLVMEmitter(program *ast.Program) *LLVMEmitter {
	context := llvm.NewContext()
	return &LLVMEmitter{
		program: program,

		funcsMap:  make(map[string]llvm.Value),
		userFuncs: make(map[string]struct{}),

		context:    context,
		module:     context.NewModule("main"),
		builder:    context.NewBuilder(),
		doubleType: context.DoubleType(),

		loopsContinueBasicBlocks: make([]llvm.BasicBlock, 0),

		loopsBreakBasicBlocks: make([]llvm.BasicBlock, 0),
	}
}

// EmitLLVM returns the textual IR of program.
func EmitLLVM(program *ast.Program) (string, error) {
	e := NewLLVMEmitter(program)
	defer e.Dispose()

	module, err := e.Emit()
	if err != nil {
		return "", err
	}
	return module.String(), nil
}

func (e *LLVMEmitter) Dispose() {
	e.builder.Dispose()
	e.module.Dispose()
	e.context.Dispose()
}

func (e *LLVMEmitter) Emit() (module llvm.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			emitErr, ok := r.(*EmitError)
			if !ok {
				panic(r)
			}
			err = emitErr
		}
	}()

	e.declareLibcFuncs()
	e.emitForProgram(e.program)

	if verifyErr := llvm.VerifyModule(e.module, llvm.ReturnStatusAction); verifyErr != nil {
		return llvm.Module{}, verifyErr
	}
	return e.module, nil
}

func (e *LLVMEmitter) fail(node ast.AstNode, format string, args ...any) {
	panic(newEmitError(node, format, args...))
}

func (e *LLVMEmitter) declareLibcFuncs() {
	for _, f := range libmFuncs {
		params := make([]llvm.Type, f.arity)
		for i := range params {
			params[i] = e.doubleType
		}
		funcType := llvm.FunctionType(e.doubleType, params, false)
		e.funcsMap[f.name] = llvm.AddFunction(e.module, f.name, funcType)
	}

	i8Ptr := llvm.PointerType(e.context.Int8Type(), 0)
	printfType := llvm.FunctionType(e.context.Int32Type(), []llvm.Type{i8Ptr}, true)
	e.funcsMap["printf"] = llvm.AddFunction(e.module, "printf", printfType)

	randType := llvm.FunctionType(e.context.Int32Type(), nil, false)
	e.funcsMap["rand"] = llvm.AddFunction(e.module, "rand", randType)
}

func (e *LLVMEmitter) emitForProgram(program *ast.Program) {
	mainType := llvm.FunctionType(e.context.Int32Type(), nil, false)
	mainFunc := llvm.AddFunction(e.module, "main", mainType)
	e.currentFunc = mainFunc

	allocBasicBlock := llvm.AddBasicBlock(mainFunc, "alloc")
	e.currentAllocBasicBlock = allocBasicBlock

	entryBasicBlock := llvm.AddBasicBlock(mainFunc, "entry")

	// break, continue or return outside a loop ends the program here.
	exitBasicBlock := llvm.AddBasicBlock(mainFunc, "exit")
	e.exitBasicBlock = exitBasicBlock
	e.nextBasicBlock = exitBasicBlock
	e.builder.SetInsertPointAtEnd(exitBasicBlock)
	e.builder.CreateRet(llvm.ConstInt(e.context.Int32Type(), 0, false))

	e.builder.SetInsertPointAtEnd(entryBasicBlock)

	e.pushScope()
	e.emitForStmts(program.Stmts)
	if !e.controlFlowHappen {
		e.builder.CreateBr(exitBasicBlock)
	}
	e.controlFlowHappen = false
	e.popScope()

	e.builder.SetInsertPointAtEnd(allocBasicBlock)
	e.builder.CreateBr(entryBasicBlock)
	e.currentAllocBasicBlock = llvm.BasicBlock{}
	e.nextBasicBlock = llvm.BasicBlock{}
}

func (e *LLVMEmitter) pushScope() {
	e.scopes = append(e.scopes, make(map[string]llvmVariable))
}

func (e *LLVMEmitter) popScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *LLVMEmitter) lookupVariable(varExpr *ast.VarExpr) llvmVariable {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if variable, ok := e.scopes[i][varExpr.Name]; ok {
			return variable
		}
	}

	e.fail(varExpr, "undefined variable: %s", varExpr.Name)
	return llvmVariable{}
}

// emitForStmts stops at the first statement that ends the block; anything
// after it is unreachable.
func (e *LLVMEmitter) emitForStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		e.emitForStmt(stmt)
		if e.controlFlowHappen {
			return
		}
	}
}

func (e *LLVMEmitter) emitForStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.ImportStmt:
	case *ast.FuncStmt:
		e.userFuncs[stmt.Name] = struct{}{}
	case *ast.VarDeclStmt:
		e.emitForVarDeclStmt(stmt)
	case *ast.IfStmt:
		e.emitForIfStmt(stmt)
	case *ast.WhileStmt:
		e.emitForWhileStmt(stmt)
	case *ast.ForStmt:
		e.emitForForStmt(stmt)
	case *ast.BreakStmt:
		e.emitForBreakStmt()
	case *ast.ContinueStmt:
		e.emitForContinueStmt()
	case *ast.ReturnStmt:
		e.emitForReturnStmt(stmt)
	case *ast.ExprStmt:
		e.emitForExpr(stmt.Expr)
	default:
		e.fail(stmt, "unsupported statement %T", stmt)
	}
}

func (e *LLVMEmitter) emitForScopeStmt(scopeStmt *ast.ScopeStmt) {
	if scopeStmt == nil {
		return
	}

	e.pushScope()
	e.emitForStmts(scopeStmt.Stmts)
	e.popScope()
}

func (e *LLVMEmitter) emitForVarDeclStmt(varDeclStmt *ast.VarDeclStmt) {
	varValue := e.nan()
	if varDeclStmt.Value != nil {
		varValue = e.emitForExpr(varDeclStmt.Value)
	}

	currBasicBlock := e.builder.GetInsertBlock()
	e.builder.SetInsertPointAtEnd(e.currentAllocBasicBlock)
	allocValue := e.builder.CreateAlloca(e.doubleType, varDeclStmt.Name)
	e.builder.SetInsertPointAtEnd(currBasicBlock)

	e.builder.CreateStore(varValue, allocValue)
	e.scopes[len(e.scopes)-1][varDeclStmt.Name] = llvmVariable{
		ptr:     allocValue,
		mutable: varDeclStmt.Mutable,
	}
}

func (e *LLVMEmitter) emitForIfStmt(ifStmt *ast.IfStmt) {
	privNextBasicBlock := e.nextBasicBlock

	checkBlock := e.context.AddBasicBlock(e.currentFunc, "ifcheck")
	ifBody := e.context.AddBasicBlock(e.currentFunc, "ifbody")
	elseBlock := e.context.AddBasicBlock(e.currentFunc, "ifelse")
	afterIfBlock := e.context.AddBasicBlock(e.currentFunc, "ifafter")

	checkBlock.MoveBefore(e.nextBasicBlock)
	ifBody.MoveBefore(e.nextBasicBlock)
	elseBlock.MoveBefore(e.nextBasicBlock)
	afterIfBlock.MoveBefore(e.nextBasicBlock)

	e.builder.CreateBr(checkBlock)
	e.builder.SetInsertPointAtEnd(checkBlock)

	e.nextBasicBlock = ifBody
	condResult := e.truthy(e.emitForExpr(ifStmt.Cond))
	e.builder.CreateCondBr(condResult, ifBody, elseBlock)

	e.nextBasicBlock = elseBlock
	e.builder.SetInsertPointAtEnd(ifBody)
	e.emitForScopeStmt(ifStmt.Body)
	if !e.controlFlowHappen {
		e.builder.CreateBr(afterIfBlock)
	}
	e.controlFlowHappen = false

	e.builder.SetInsertPointAtEnd(elseBlock)
	e.nextBasicBlock = afterIfBlock
	e.emitForScopeStmt(ifStmt.Else)
	if !e.controlFlowHappen {
		e.builder.CreateBr(afterIfBlock)
	}
	e.controlFlowHappen = false

	e.builder.SetInsertPointAtEnd(afterIfBlock)
	e.nextBasicBlock = privNextBasicBlock
}

func (e *LLVMEmitter) emitForWhileStmt(whileStmt *ast.WhileStmt) {
	privNextBasicBlock := e.nextBasicBlock

	checkBlock := e.context.AddBasicBlock(e.currentFunc, "whilecheck")
	bodyBlock := e.context.AddBasicBlock(e.currentFunc, "whilebody")
	afterBlock := e.context.AddBasicBlock(e.currentFunc, "whileafter")

	e.loopsContinueBasicBlocks = append(e.loopsContinueBasicBlocks, checkBlock)
	e.loopsBreakBasicBlocks = append(e.loopsBreakBasicBlocks, afterBlock)

	checkBlock.MoveBefore(e.nextBasicBlock)
	bodyBlock.MoveBefore(e.nextBasicBlock)
	afterBlock.MoveBefore(e.nextBasicBlock)

	e.builder.CreateBr(checkBlock)
	e.builder.SetInsertPointAtEnd(checkBlock)

	e.nextBasicBlock = bodyBlock
	condValue := e.truthy(e.emitForExpr(whileStmt.Cond))
	e.builder.CreateCondBr(condValue, bodyBlock, afterBlock)

	e.builder.SetInsertPointAtEnd(bodyBlock)
	e.nextBasicBlock = afterBlock
	e.emitForScopeStmt(whileStmt.Body)
	if !e.controlFlowHappen {
		e.builder.CreateBr(checkBlock)
	}
	e.controlFlowHappen = false

	e.builder.SetInsertPointAtEnd(afterBlock)
	e.nextBasicBlock = privNextBasicBlock
	e.popLoop()
}

func (e *LLVMEmitter) emitForForStmt(forStmt *ast.ForStmt) {
	privNextBasicBlock := e.nextBasicBlock

	initBlock := e.context.AddBasicBlock(e.currentFunc, "forinit")
	checkBlock := e.context.AddBasicBlock(e.currentFunc, "forcheck")
	bodyBlock := e.context.AddBasicBlock(e.currentFunc, "forbody")
	postBlock := e.context.AddBasicBlock(e.currentFunc, "forpost")
	afterBlock := e.context.AddBasicBlock(e.currentFunc, "forafter")

	e.loopsContinueBasicBlocks = append(e.loopsContinueBasicBlocks, postBlock)
	e.loopsBreakBasicBlocks = append(e.loopsBreakBasicBlocks, afterBlock)

	initBlock.MoveBefore(e.nextBasicBlock)
	checkBlock.MoveBefore(e.nextBasicBlock)
	bodyBlock.MoveBefore(e.nextBasicBlock)
	postBlock.MoveBefore(e.nextBasicBlock)
	afterBlock.MoveBefore(e.nextBasicBlock)

	// The init binding lives for the whole loop, not just one pass.
	e.pushScope()

	e.builder.CreateBr(initBlock)
	e.builder.SetInsertPointAtEnd(initBlock)
	e.nextBasicBlock = checkBlock
	if forStmt.Init != nil {
		e.emitForStmt(forStmt.Init)
	}

	e.builder.CreateBr(checkBlock)
	e.builder.SetInsertPointAtEnd(checkBlock)
	e.nextBasicBlock = bodyBlock
	if forStmt.Cond != nil {
		condValue := e.truthy(e.emitForExpr(forStmt.Cond))
		e.builder.CreateCondBr(condValue, bodyBlock, afterBlock)
	} else {
		e.builder.CreateBr(bodyBlock)
	}

	e.builder.SetInsertPointAtEnd(bodyBlock)
	e.nextBasicBlock = postBlock
	e.emitForScopeStmt(forStmt.Body)
	if !e.controlFlowHappen {
		e.builder.CreateBr(postBlock)
	}
	e.controlFlowHappen = false

	e.builder.SetInsertPointAtEnd(postBlock)
	e.nextBasicBlock = afterBlock
	if forStmt.Update != nil {
		e.emitForExpr(forStmt.Update)
	}
	e.builder.CreateBr(checkBlock)

	e.popScope()

	e.builder.SetInsertPointAtEnd(afterBlock)
	e.nextBasicBlock = privNextBasicBlock
	e.popLoop()
}

func (e *LLVMEmitter) popLoop() {
	e.loopsContinueBasicBlocks = e.loopsContinueBasicBlocks[:len(e.loopsContinueBasicBlocks)-1]
	e.loopsBreakBasicBlocks = e.loopsBreakBasicBlocks[:len(e.loopsBreakBasicBlocks)-1]
}

func (e *LLVMEmitter) emitForReturnStmt(returnStmt *ast.ReturnStmt) {
	if returnStmt.Expr != nil {
		e.emitForExpr(returnStmt.Expr)
	}

	e.controlFlowHappen = true
	e.builder.CreateBr(e.exitBasicBlock)
}

func (e *LLVMEmitter) emitForContinueStmt() {
	e.controlFlowHappen = true
	if len(e.loopsContinueBasicBlocks) == 0 {
		e.builder.CreateBr(e.exitBasicBlock)
		return
	}
	e.builder.CreateBr(e.loopsContinueBasicBlocks[len(e.loopsContinueBasicBlocks)-1])
}

func (e *LLVMEmitter) emitForBreakStmt() {
	e.controlFlowHappen = true
	if len(e.loopsBreakBasicBlocks) == 0 {
		e.builder.CreateBr(e.exitBasicBlock)
		return
	}
	e.builder.CreateBr(e.loopsBreakBasicBlocks[len(e.loopsBreakBasicBlocks)-1])
}

func (e *LLVMEmitter) emitForExpr(expr ast.Expr) llvm.Value {
	switch expr := expr.(type) {
	case *ast.NumberExpr:
		return llvm.ConstFloat(e.doubleType, expr.Value)
	case *ast.BoolExpr:
		if expr.Value {
			return llvm.ConstFloat(e.doubleType, 1)
		}
		return llvm.ConstFloat(e.doubleType, 0)
	case *ast.StringExpr:
		return e.nan()
	case *ast.VarExpr:
		variable := e.lookupVariable(expr)
		return e.builder.CreateLoad(e.doubleType, variable.ptr, "loadtmp")
	case *ast.BinaryExpr:
		if expr.IsAssignment() {
			return e.emitForAssignExpr(expr)
		}
		return e.emitForBinExpr(expr)
	case *ast.UnaryExpr:
		return e.emitForUnaryExpr(expr)
	case *ast.CallExpr:
		return e.emitForCallExpr(expr)
	case *ast.TupleExpr:
		for _, element := range expr.Elements {
			e.emitForExpr(element)
		}
		return e.nan()
	}

	e.fail(expr, "unsupported expression %T", expr)
	return llvm.Value{}
}

func (e *LLVMEmitter) emitForAssignExpr(assignExpr *ast.BinaryExpr) llvm.Value {
	target := assignExpr.Left.(*ast.VarExpr)
	value := e.emitForExpr(assignExpr.Right)

	variable := e.lookupVariable(target)
	if !variable.mutable {
		e.fail(assignExpr, "cannot reassign immutable variable: %s", target.Name)
	}

	e.builder.CreateStore(value, variable.ptr)
	return value
}

// emitForBinExpr evaluates both operands; && and || do not short-circuit.
func (e *LLVMEmitter) emitForBinExpr(binExpr *ast.BinaryExpr) llvm.Value {
	leftValue := e.emitForExpr(binExpr.Left)
	rightValue := e.emitForExpr(binExpr.Right)

	switch binExpr.Op {
	case "+":
		return e.builder.CreateFAdd(leftValue, rightValue, "addtmp")
	case "-":
		return e.builder.CreateFSub(leftValue, rightValue, "subtmp")
	case "*":
		return e.builder.CreateFMul(leftValue, rightValue, "multmp")
	case "/":
		return e.builder.CreateFDiv(leftValue, rightValue, "divtmp")
	case "%":
		return e.builder.CreateFRem(leftValue, rightValue, "modtmp")
	case "==":
		return e.fromBool(e.approxEqual(leftValue, rightValue))
	case "!=":
		return e.fromBool(e.builder.CreateNot(e.approxEqual(leftValue, rightValue), "netmp"))
	case "<":
		return e.fromBool(e.builder.CreateFCmp(llvm.FloatOLT, leftValue, rightValue, "lttmp"))
	case ">":
		return e.fromBool(e.builder.CreateFCmp(llvm.FloatOGT, leftValue, rightValue, "gttmp"))
	case "<=":
		return e.fromBool(e.builder.CreateFCmp(llvm.FloatOLE, leftValue, rightValue, "letmp"))
	case ">=":
		return e.fromBool(e.builder.CreateFCmp(llvm.FloatOGE, leftValue, rightValue, "getmp"))
	case "&&":
		return e.fromBool(e.builder.CreateAnd(e.truthy(leftValue), e.truthy(rightValue), "andtmp"))
	case "||":
		return e.fromBool(e.builder.CreateOr(e.truthy(leftValue), e.truthy(rightValue), "ortmp"))
	}

	e.fail(binExpr, "unknown operator: %s", binExpr.Op)
	return llvm.Value{}
}

func (e *LLVMEmitter) emitForUnaryExpr(unaryExpr *ast.UnaryExpr) llvm.Value {
	value := e.emitForExpr(unaryExpr.Operand)

	switch unaryExpr.Op {
	case "+":
		return value
	case "-":
		return e.builder.CreateFNeg(value, "unarynegatetmp")
	case "!":
		return e.fromBool(e.builder.CreateNot(e.truthy(value), "unarynottmp"))
	case "~":
		i64 := e.context.Int64Type()
		intValue := e.builder.CreateFPToSI(value, i64, "unarybitnottmp")
		flipped := e.builder.CreateXor(intValue, llvm.ConstInt(i64, math.MaxUint64, true), "unarybitnottmp")
		return e.builder.CreateSIToFP(flipped, e.doubleType, "unarybitnottmp")
	}

	e.fail(unaryExpr, "unknown unary operator: %s", unaryExpr.Op)
	return llvm.Value{}
}

func (e *LLVMEmitter) emitForCallExpr(callExpr *ast.CallExpr) llvm.Value {
	if !callExpr.Member {
		if _, ok := e.userFuncs[callExpr.Name]; ok {
			e.fail(callExpr, "cannot call user-defined function: %s", callExpr.Name)
		}
		e.fail(callExpr, "unknown function: %s", callExpr.Name)
	}

	switch callExpr.Module {
	case "math":
		return e.emitForMathCall(callExpr)
	case "util":
		if callExpr.Name == "randomInt" {
			return e.emitForRandomIntCall(callExpr)
		}
	case "io":
		if callExpr.Name == "print" || callExpr.Name == "println" {
			return e.emitForPrintCall(callExpr)
		}
	case "text":
		return e.nan()
	case "":
		e.fail(callExpr, "unknown module: str.")
	default:
		e.fail(callExpr, "unknown module: %s", callExpr.Module)
	}

	e.fail(callExpr, "unknown function: %s.%s", callExpr.Module, callExpr.Name)
	return llvm.Value{}
}

// emitForArgs evaluates every argument and pads with zeros up to n.
func (e *LLVMEmitter) emitForArgs(callExpr *ast.CallExpr, n int) []llvm.Value {
	args := make([]llvm.Value, 0, max(n, len(callExpr.Args)))
	for _, arg := range callExpr.Args {
		args = append(args, e.emitForExpr(arg))
	}
	for len(args) < n {
		args = append(args, llvm.ConstFloat(e.doubleType, 0))
	}
	return args
}

func (e *LLVMEmitter) emitForMathCall(callExpr *ast.CallExpr) llvm.Value {
	if callExpr.Name == "random" {
		e.emitForArgs(callExpr, 0)
		return e.random()
	}

	name, ok := mathBuiltins[callExpr.Name]
	if !ok {
		e.fail(callExpr, "unknown function: math.%s", callExpr.Name)
	}

	funcValue := e.funcsMap[name]
	arity := funcValue.ParamsCount()
	args := e.emitForArgs(callExpr, arity)
	return e.builder.CreateCall(funcValue.GlobalValueType(), funcValue, args[:arity], "calltmp")
}

func (e *LLVMEmitter) emitForRandomIntCall(callExpr *ast.CallExpr) llvm.Value {
	args := e.emitForArgs(callExpr, 2)

	lo, hi := llvm.ConstFloat(e.doubleType, 0), args[0]
	if len(callExpr.Args) >= 2 {
		lo, hi = args[0], args[1]
	}

	span := e.builder.CreateFSub(hi, lo, "spantmp")
	scaled := e.builder.CreateFMul(e.random(), span, "scaledtmp")
	value := e.builder.CreateFAdd(lo, scaled, "randomtmp")

	floor := e.funcsMap["floor"]
	return e.builder.CreateCall(floor.GlobalValueType(), floor, []llvm.Value{value}, "calltmp")
}

// emitForPrintCall lowers to one printf. String literals go through %s so
// their text is never read as a format.
func (e *LLVMEmitter) emitForPrintCall(callExpr *ast.CallExpr) llvm.Value {
	var format strings.Builder
	args := make([]llvm.Value, 1, len(callExpr.Args)+1)

	for _, arg := range callExpr.Args {
		if literal, ok := arg.(*ast.StringExpr); ok {
			format.WriteString("%s ")
			args = append(args, e.builder.CreateGlobalStringPtr(literal.Value, "strtmp"))
			continue
		}

		format.WriteString("%g ")
		args = append(args, e.emitForExpr(arg))
	}
	format.WriteString("\n")
	args[0] = e.builder.CreateGlobalStringPtr(format.String(), "fmttmp")

	printf := e.funcsMap["printf"]
	e.builder.CreateCall(printf.GlobalValueType(), printf, args, "")

	return e.nan()
}

// random is rand() scaled into [0, 1).
func (e *LLVMEmitter) random() llvm.Value {
	randFunc := e.funcsMap["rand"]
	raw := e.builder.CreateCall(randFunc.GlobalValueType(), randFunc, nil, "randtmp")
	value := e.builder.CreateSIToFP(raw, e.doubleType, "randtmp")
	return e.builder.CreateFDiv(value, llvm.ConstFloat(e.doubleType, randMaxPlusOne), "randtmp")
}

func (e *LLVMEmitter) approxEqual(left, right llvm.Value) llvm.Value {
	diff := e.builder.CreateFSub(left, right, "difftmp")
	fabs := e.funcsMap["fabs"]
	abs := e.builder.CreateCall(fabs.GlobalValueType(), fabs, []llvm.Value{diff}, "abstmp")
	return e.builder.CreateFCmp(llvm.FloatOLT, abs, llvm.ConstFloat(e.doubleType, 1e-9), "eqtmp")
}

// truthy is non-zero and not NaN; the ordered compare is false for NaN.
func (e *LLVMEmitter) truthy(value llvm.Value) llvm.Value {
	return e.builder.CreateFCmp(llvm.FloatONE, value, llvm.ConstFloat(e.doubleType, 0), "truthytmp")
}

func (e *LLVMEmitter) fromBool(value llvm.Value) llvm.Value {
	return e.builder.CreateUIToFP(value, e.doubleType, "booltmp")
}

func (e *LLVMEmitter) nan() llvm.Value {
	return llvm.ConstFloat(e.doubleType, math.NaN())
}
