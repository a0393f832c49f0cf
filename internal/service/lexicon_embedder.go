package service

import (
	"context"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"sync"

	"rental_coach_backend/pkg/textnorm"
)

// 概念维度
const (
	cPet = iota
	cAnimal
	cPermit
	cMove
	cLease
	cDuration
	cUtility
	cParking
	cVehicle
	cFurniture
	cRoom
	cMoney
	cMonth
	cAppointment
	cTime
	cHome
	cSublet
	cSecurity
	cCamera
	cLaundry
	cInclude
	cGuest
	cHeating
	cTemperature
	numConcepts
)

const oovBuckets = 256

type weights map[int]float64

type entry struct {
	w     weights
	scale float64
}

func words(ws string, w weights) map[string]entry {
	return scaled(ws, w, 1)
}

// scaled 向量长度为 scale；许可类词只起修饰作用，不能单独撑起一个话题
func scaled(ws string, w weights, scale float64) map[string]entry {
	out := make(map[string]entry)
	for _, word := range strings.Fields(ws) {
		out[word] = entry{w: w, scale: scale}
	}
	return out
}

const permitScale = 0.3

// rentalLexicon 租房领域的小型概念词表，按原词登记。
// NewLexiconEmbedder 会再补上各词规范化后的形式。
var rentalLexicon = mergeLexicon(
	words("pet pets", weights{cPet: 1}),
	words("dog dogs puppy puppies cat cats kitten kittens bird birds fish", weights{cPet: 0.8, cAnimal: 0.6}),
	words("animal animals", weights{cAnimal: 1}),
	scaled("allow allowed allows permit permitted permission ok okay", weights{cPermit: 1}, permitScale),
	words("bring brings brought", weights{cPermit: 0.6, cMove: 0.8}),
	words("lease leases leasing contract contracts", weights{cLease: 1}),
	words("long length duration term terms", weights{cDuration: 1}),
	words("year years yearly annual", weights{cDuration: 0.8, cLease: 0.6}),
	words("utility utilities electricity electric water gas internet wifi", weights{cUtility: 1}),
	words("bill bills", weights{cUtility: 0.6, cMoney: 0.8}),
	words("parking park parked garage driveway spot spots", weights{cParking: 1}),
	words("car cars vehicle vehicles", weights{cParking: 0.6, cVehicle: 0.8}),
	words("furnish furnished furnishing furnishings furniture couch sofa bed beds desk", weights{cFurniture: 1}),
	words("room rooms bedroom bedrooms", weights{cRoom: 1}),
	words("rent rents rental price prices cost costs pay pays paying payment dollar dollars expensive cheap afford deposit fee fees", weights{cMoney: 1}),
	words("month months monthly", weights{cMonth: 1}),
	words("view viewing viewings tour tours visit visiting showing appointment", weights{cAppointment: 1}),
	words("schedule scheduled scheduling book booking available availability", weights{cAppointment: 0.6, cTime: 0.8}),
	words("house houses home apartment apartments unit units place property flat", weights{cHome: 1}),
	words("sublet sublets subletting sublease subleases subleasing", weights{cSublet: 1}),
	words("roommate roommates", weights{cSublet: 0.6, cGuest: 0.8}),
	words("security secure safe safety", weights{cSecurity: 1}),
	words("camera cameras cctv surveillance", weights{cSecurity: 0.6, cCamera: 0.8}),
	words("washer washers dryer dryers laundry washing wash", weights{cLaundry: 1}),
	words("include included includes including", weights{cInclude: 1}),
	words("guest guests visitor visitors friend friends overnight", weights{cGuest: 1}),
	words("heating heat heater heated furnace radiator radiators", weights{cHeating: 1}),
	words("cold warm winter", weights{cHeating: 0.6, cTemperature: 0.8}),
)

func mergeLexicon(parts ...map[string]entry) map[string][]float64 {
	out := make(map[string][]float64)
	for _, p := range parts {
		for word, e := range p {
			v := make([]float64, numConcepts)
			var norm float64
			for axis, x := range e.w {
				v[axis] = x
				norm += x * x
			}
			norm = math.Sqrt(norm)
			for i := range v {
				v[i] = v[i] / norm * e.scale
			}
			out[word] = v
		}
	}
	return out
}

var (
	lemmaLexiconOnce sync.Once
	lemmaLexicon     map[string][]float64
)

// withNormalizedForms 把每个词规范化后的形式也登记进词表，
// 输入文本经 textnorm 处理后仍能查到。原词登记优先。
func withNormalizedForms(base map[string][]float64, normalize func(string) []string) map[string][]float64 {
	out := make(map[string][]float64, len(base)*2)
	keys := make([]string, 0, len(base))
	for word, v := range base {
		out[word] = v
		keys = append(keys, word)
	}
	sort.Strings(keys)
	for _, word := range keys {
		v := base[word]
		toks := normalize(word)
		if len(toks) != 1 {
			continue
		}
		if _, ok := out[toks[0]]; !ok {
			out[toks[0]] = v
		}
	}
	return out
}

// LexiconEmbedder 离线的平均词向量；未登录词哈希到独立桶，
// 只与相同的未登录词相似。
type LexiconEmbedder struct {
	lexicon map[string][]float64
}

func NewLexiconEmbedder() *LexiconEmbedder {
	lemmaLexiconOnce.Do(func() {
		lemmaLexicon = withNormalizedForms(rentalLexicon, textnorm.Tokens)
	})
	return &LexiconEmbedder{lexicon: lemmaLexicon}
}

func (e *LexiconEmbedder) Name() string { return "lexicon" }

func (e *LexiconEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	out := make([]float64, numConcepts+oovBuckets)
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return out, nil
	}
	for _, tok := range tokens {
		if v, ok := e.lexicon[tok]; ok {
			for i, x := range v {
				out[i] += x
			}
			continue
		}
		out[numConcepts+bucket(tok)] += 1
	}
	n := float64(len(tokens))
	for i := range out {
		out[i] /= n
	}
	return out, nil
}

func bucket(tok string) int {
	h := fnv.New32a()
	h.Write([]byte(tok))
	return int(h.Sum32() % oovBuckets)
}
