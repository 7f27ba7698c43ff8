/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package contract evaluates preconditions, postconditions and
// invariants around operations.
//
// An operation is defined once, during startup, by wrapping its body
// together with its conditions:
//
//	e := contract.MustEngine(contract.DefaultConfig())
//	withdraw := contract.NewOperation(e, "withdraw",
//		func(ctx context.Context, w Withdrawal) outcome.Outcome[float64] {
//			w.Account.Balance -= w.Amount
//			return outcome.Success(w.Account.Balance)
//		}).
//		Pre("amount positive",
//			func(w Withdrawal) bool { return w.Amount > 0 },
//			"withdrawal amount must be positive").
//		Post("balance reduced",
//			func(pre Withdrawal, got float64) bool { return got == pre.Account.Balance - pre.Amount },
//			"balance must drop by exactly the amount").
//		Snapshot(func(w Withdrawal) Withdrawal {
//			cp := *w.Account
//			return Withdrawal{Account: &cp, Amount: w.Amount}
//		}).
//		MustBuild()
//
// Calls then flow through [Operation.Call], which runs the conditions
// in registration order around the body and reports the result as an
// outcome. The first violation ends the call; a violation before the
// body prevents it from running, and a violation after the body
// overrides its success.
//
// # Verification mode
//
// Each [Engine] holds a [Mode], fixed at construction from a [Config]
// read out of YAML ([LoadConfig]) or the environment ([ConfigFromEnv]).
// Disabled engines run bodies without evaluating any predicate, so a
// contract violation can never be produced; this is the production
// escape hatch for contracts too expensive to check on every call. The
// mode is per engine rather than process-wide, which lets tests build
// an enabled and a disabled engine side by side. Flipping the mode
// after calls have begun is rejected, since it would make contract
// behavior depend on call timing.
//
// # Failure containment
//
// The engine assumes its own inputs are broken until proven otherwise.
// A predicate that panics converts to a contract_violation failure with
// the panic as cause and reports as critical; a body that panics
// converts to an unexpected failure the same way, in both modes. Neither
// escapes the call.
package contract
