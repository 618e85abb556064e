// Package setpart groups sites by solving binary integer programs through a
// mip.Solver.
//
// Two modes are provided:
//
//   - SetPartition (exact cover): one binary variable per feasible subset of
//     at most MaxSubsetSize sites whose pooled ISP lies in [MinISP, TargetISP];
//     one equality row per site requiring exactly one selected subset holding
//     it; maximize the summed reimbursement of the selected subsets.
//
//   - BinGreedy (bin-capacity sweep): for every candidate bin size, repeatedly
//     select one bin from the unassigned sites by solving
//
//     maximize   Σ isp_i·x_i
//     subject to Σ (eligible_i − MinISP·enrolled_i)·x_i ≥ 0
//     Σ (eligible_i − TargetISP·enrolled_i)·x_i ≤ 0
//     Σ x_i ≤ binSize
//
//     until fewer than two sites remain or no improving bin exists. The sweep
//     with the greatest total reimbursement wins.
//
// Both modes keep the first site of every code and drop sites without
// enrollment before optimizing; filtered sites never appear in any group.
// Subset objective coefficients and sweep scores use the shared group
// estimator (cep.Group.EstimateReimbursement), so re-estimating the produced
// groups reproduces the reported objective.
//
// Infeasible or non-optimal solves mean "no solution", never an error: the
// Strategy adapters then place every filtered site into one catch-all group.
package setpart
