package algo

import "github.com/mtlpdq/pdqstats/schema"

// ShiftsByDistrict counts the records of every district per police shift.
// Records without a district or a shift are skipped. Every district present gets
// all three shifts, zero-filled.
func ShiftsByDistrict(records []schema.IncidentRecord) map[int]map[schema.Period]int {
	out := make(map[int]map[schema.Period]int)
	for _, r := range records {
		if r.District == nil || r.Period == "" {
			continue
		}
		perShift, ok := out[*r.District]
		if !ok {
			perShift = make(map[schema.Period]int, len(schema.AllPeriods))
			for _, p := range schema.AllPeriods {
				perShift[p] = 0
			}
			out[*r.District] = perShift
		}
		perShift[r.Period]++
	}
	return out
}
