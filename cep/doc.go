// Package cep provides the shared data and metric model for grouping school
// sites under the Community Eligibility Provision (CEP).
//
// A sponsor (district) owns a roster of sites. A grouping strategy partitions
// that roster into groups; every group pools its sites' enrollment and
// eligibility into one identified student percentage (ISP), which is mapped to
// a single free-claiming rate applied to all of its members. Pooling a high-ISP
// site with a low-ISP site can lift the pair above the minimum threshold, at the
// cost of per-site precision. This package holds everything every strategy
// depends on:
//
//   - Program constants and IspToFreeRate (rate table and ISP→rate mapping).
//   - Site: a leaf roster entry and its pure per-site reimbursement function.
//   - Group: pooled metrics over an ordered, mutable member list.
//   - Sponsor: the roster, the certification flag and the registered strategies.
//   - Strategy / Base: the common strategy contract and its derived metrics.
//   - Params: the string-keyed configuration mapping handed to strategies.
//   - EvaluateStrategies: run every strategy and keep the best by objective.
//
// Reimbursement model:
//
//	perDay = B·freeB·r + B·paidB·(1−r) + L·freeL·r + L·paidL·(1−r) [+ L·0.07 if certified]
//	annual = round(perDay, 2) · 180
//
// where B and L are daily breakfasts and lunches served and r is the claiming
// rate. A claiming rate of zero yields zero. The certification bonus is part of
// the per-day total and is therefore rounded together with it.
//
// Rounding follows the half-to-even convention throughout (ISP to 4 places,
// per-day dollars to cents, covered students and strategy totals to integers).
//
// Concurrency:
//   - Site values are immutable after construction and safe to share.
//   - Group member lists are owned by the strategy that built them.
//   - EvaluateStrategies may run strategies in parallel (WithConcurrency); each
//     strategy must only read the sponsor and its sites.
package cep
