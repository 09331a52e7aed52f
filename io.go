package latentlab

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// main_file should not be a number, so it can never collide with a node file
const main_file string = "main"

func idList(ng *nodeGroup) string {
	strs := make([]string, num(ng))
	for i, n := range ng.nodes {
		strs[i] = strconv.Itoa(n.id)
	}

	return strings.Join(strs, " ")
}

func parseIDList(str string) ([]int, error) {
	if str == "" {
		return nil, nil
	}

	strs := strings.Split(str, " ")
	ids := make([]int, len(strs))
	for i, s := range strs {
		var err error
		if ids[i], err = strconv.Atoi(s); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

func (net *Network) printMain(dirPath string) error {
	f, err := os.Create(dirPath + "/" + main_file + ".txt")
	if err != nil {
		return errors.Wrapf(err, "Couldn't create file %q in %q\n", main_file, dirPath)
	}

	defer f.Close()

	w := bufio.NewWriter(f)
	w.WriteString(strconv.Itoa(len(net.nodesByID)) + "\n")
	w.WriteString(idList(net.inputs) + "\n")
	w.WriteString(idList(net.outputs) + "\n")
	w.WriteString(net.cf.TypeString() + "\n")

	w.WriteString(strconv.Itoa(len(net.hyperParams)) + "\n")
	for name, hp := range net.hyperParams {
		w.WriteString(name + " " + hp.TypeString() + "\n")
	}

	return w.Flush()
}

func (n *Node) printNode(dirPath string) error {
	f, err := os.Create(dirPath + "/" + strconv.Itoa(n.id) + ".txt")
	if err != nil {
		return errors.Wrapf(err, "Couldn't create file for node %v\n", n)
	}

	defer f.Close()

	opStr, optStr := "", ""
	if n.op != nil {
		opStr = n.op.TypeString()
	}
	if n.opt != nil {
		optStr = n.opt.TypeString()
	}

	w := bufio.NewWriter(f)
	w.WriteString(strconv.Itoa(n.id) + "\n")
	w.WriteString(n.name + "\n")
	w.WriteString(strconv.Itoa(n.Size()) + "\n")
	if n.inputs != nil {
		w.WriteString(idList(n.inputs))
	}
	w.WriteString("\n")
	w.WriteString(opStr + "\n")
	w.WriteString(optStr + "\n")

	w.WriteString(strconv.Itoa(len(n.hyperParams)) + "\n")
	for name, hp := range n.hyperParams {
		w.WriteString(name + " " + hp.TypeString() + "\n")
	}

	return w.Flush()
}

// Save writes the Network to the given path, creating a directory to contain
// it (with permissions 0700). Operators, Optimizers and HyperParameters are
// stored by their type strings so that Load can reassemble them from the
// registries. Penalties and Initializers are construction-time configuration
// and are not saved.
//
// If 'overwrite' is false and the directory already exists, Save returns an
// error.
func (net *Network) Save(dirPath string, overwrite bool) error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	}

	if _, err := os.Stat(dirPath); err == nil {
		if !overwrite {
			return errors.Errorf("Can't save network, %q already exists and overwrite is not enabled", dirPath)
		}

		if err = os.RemoveAll(dirPath); err != nil {
			return errors.Wrapf(err, "Can't save network, couldn't remove pre-existing directory\n")
		}
	}

	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Couldn't make directory to save network\n")
	}

	if err := net.printMain(dirPath); err != nil {
		return errors.Wrapf(err, "Couldn't save network overview\n")
	}

	for name, hp := range net.hyperParams {
		if err := hp.Save(nil, dirPath+"/net-hp-"+name); err != nil {
			return errors.Wrapf(err, "Couldn't save network HyperParameter %q\n", name)
		}
	}

	for _, n := range net.nodesByID {
		if err := n.printNode(dirPath); err != nil {
			return errors.Wrapf(err, "Couldn't save node %v\n", n)
		}

		if n.IsInput() {
			continue
		}

		subDir := dirPath + "/" + strconv.Itoa(n.id)
		if err := os.MkdirAll(subDir, 0700); err != nil {
			return errors.Wrapf(err, "Couldn't make directory to save node %v\n", n)
		}

		if err := n.op.Save(n, subDir); err != nil {
			return errors.Wrapf(err, "Couldn't save Operator of node %v\n", n)
		}

		if n.opt != nil {
			if err := n.opt.Save(n, subDir+"/opt"); err != nil {
				return errors.Wrapf(err, "Couldn't save Optimizer of node %v\n", n)
			}
		}

		for name, hp := range n.hyperParams {
			if err := hp.Save(n, subDir+"/hp-"+name); err != nil {
				return errors.Wrapf(err, "Couldn't save HyperParameter %q of node %v\n", name, n)
			}
		}
	}

	return nil
}

type nodeFile struct {
	id       int
	name     string
	size     int
	inputIDs []int
	opStr    string
	optStr   string
	hps      map[string]string
}

func readNodeFile(dirPath string, id int) (*nodeFile, error) {
	f, err := os.Open(dirPath + "/" + strconv.Itoa(id) + ".txt")
	if err != nil {
		return nil, errors.Errorf("File for node #%d doesn't exist", id)
	}

	defer f.Close()

	formatErr := errors.Errorf("File for node #%d has wrong format", id)

	sc := bufio.NewScanner(f)
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	nf := new(nodeFile)

	str, ok := next()
	if !ok {
		return nil, formatErr
	} else if nf.id, err = strconv.Atoi(str); err != nil || nf.id != id {
		return nil, formatErr
	}

	if nf.name, ok = next(); !ok || nf.name == "" {
		return nil, formatErr
	}

	if str, ok = next(); !ok {
		return nil, formatErr
	} else if nf.size, err = strconv.Atoi(str); err != nil {
		return nil, formatErr
	}

	if str, ok = next(); !ok {
		return nil, formatErr
	} else if nf.inputIDs, err = parseIDList(str); err != nil {
		return nil, formatErr
	}

	if nf.opStr, ok = next(); !ok {
		return nil, formatErr
	}
	if nf.optStr, ok = next(); !ok {
		return nil, formatErr
	}

	if str, ok = next(); !ok {
		return nil, formatErr
	}
	numHPs, err := strconv.Atoi(str)
	if err != nil {
		return nil, formatErr
	}

	nf.hps = make(map[string]string, numHPs)
	for i := 0; i < numHPs; i++ {
		if str, ok = next(); !ok {
			return nil, formatErr
		}

		parts := strings.SplitN(str, " ", 2)
		if len(parts) != 2 {
			return nil, formatErr
		}

		nf.hps[parts[0]] = parts[1]
	}

	return nf, nil
}

func loadHP(typeStr, dirPath string) (HyperParameter, error) {
	blank := hyperParamNames[typeStr]
	if blank == nil {
		return nil, errors.Errorf("No registered HyperParameter %q", typeStr)
	}

	hp := blank()
	if err := hp.Load(dirPath); err != nil {
		return nil, errors.Wrapf(err, "Failed to load HyperParameter from %q\n", dirPath)
	}

	return hp, nil
}

// Load reads a Network previously written by Save. Operators, Optimizers,
// CostFunctions and HyperParameters are reassembled from the registries by
// their type strings, so the subpackages providing them must have been
// imported.
func Load(dirPath string) (*Network, error) {
	if _, err := os.Stat(dirPath); err != nil {
		return nil, errors.Errorf("Can't load network, %q does not exist", dirPath)
	}

	main, err := os.Open(dirPath + "/" + main_file + ".txt")
	if err != nil {
		return nil, errors.Errorf("Can't load network, main file does not exist")
	}
	defer main.Close()

	formatErr := errors.Errorf("Can't load network, main file is incompatible")
	sc := bufio.NewScanner(main)
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}

	str, ok := next()
	if !ok {
		return nil, formatErr
	}
	numNodes, err := strconv.Atoi(str)
	if err != nil || numNodes < 1 {
		return nil, formatErr
	}

	if _, ok = next(); !ok { // input ids; implied by the node files
		return nil, formatErr
	}

	str, ok = next()
	if !ok {
		return nil, formatErr
	}
	outputIDs, err := parseIDList(str)
	if err != nil || len(outputIDs) == 0 {
		return nil, formatErr
	}

	str, ok = next()
	if !ok {
		return nil, formatErr
	}
	cfBlank := costFuncNames[str]
	if cfBlank == nil {
		return nil, errors.Errorf("Can't load network, no registered CostFunction %q", str)
	}
	cf := cfBlank()

	if str, ok = next(); !ok {
		return nil, formatErr
	}
	numNetHPs, err := strconv.Atoi(str)
	if err != nil {
		return nil, formatErr
	}

	netHPs := make(map[string]string, numNetHPs)
	for i := 0; i < numNetHPs; i++ {
		if str, ok = next(); !ok {
			return nil, formatErr
		}

		parts := strings.SplitN(str, " ", 2)
		if len(parts) != 2 {
			return nil, formatErr
		}

		netHPs[parts[0]] = parts[1]
	}

	net := new(Network)

	for name, typeStr := range netHPs {
		hp, err := loadHP(typeStr, dirPath+"/net-hp-"+name)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't load network HyperParameter %q\n", name)
		}

		net.AddHP(name, hp)
	}

	// remake all of the nodes, in order by id. id order is topological, so
	// inputs always exist before the nodes that use them.
	files := make([]*nodeFile, numNodes)
	for id := 0; id < numNodes; id++ {
		nf, err := readNodeFile(dirPath, id)
		if err != nil {
			return nil, errors.Wrapf(err, "Can't load network\n")
		}
		files[id] = nf

		var op Operator
		if len(nf.inputIDs) != 0 {
			blank := operatorNames[nf.opStr]
			if blank == nil {
				return nil, errors.Errorf("Can't load network, no registered Operator %q (node %q)", nf.opStr, nf.name)
			}
			op = blank()
		}

		inputs := make([]*Node, len(nf.inputIDs))
		for i, inID := range nf.inputIDs {
			if inID < 0 || inID >= id {
				return nil, errors.Errorf("Can't load network, node %q has out-of-order input id %d", nf.name, inID)
			}
			inputs[i] = net.nodesByID[inID]
		}

		n := net.Add(nf.name, op, nf.size, inputs...)

		if nf.optStr != "" {
			blank := optimizerNames[nf.optStr]
			if blank == nil {
				return nil, errors.Errorf("Can't load network, no registered Optimizer %q (node %q)", nf.optStr, nf.name)
			}
			n.Opt(blank())
		}

		for name, typeStr := range nf.hps {
			hp, err := loadHP(typeStr, dirPath+"/"+strconv.Itoa(id)+"/hp-"+name)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't load HyperParameter %q of node %q\n", name, nf.name)
			}
			n.AddHP(name, hp)
		}

		if net.Error() != nil {
			return nil, errors.Wrapf(net.Error(), "Can't load network, failed to remake node %q\n", nf.name)
		}
	}

	outputs := make([]*Node, len(outputIDs))
	for i, id := range outputIDs {
		if id < 0 || id >= numNodes {
			return nil, formatErr
		}
		outputs[i] = net.nodesByID[id]
	}

	if err := net.Finalize(cf, outputs...); err != nil {
		return nil, errors.Wrapf(err, "Loaded network; could not finalize\n")
	}

	// overwrite the freshly initialized weights with the saved ones
	for id, nf := range files {
		n := net.nodesByID[id]
		if n.IsInput() {
			continue
		}

		subDir := dirPath + "/" + strconv.Itoa(id)
		if err := n.op.Load(n, subDir); err != nil {
			return nil, errors.Wrapf(err, "Can't load network, failed to load Operator of node %q\n", nf.name)
		}

		if n.opt != nil {
			if err := n.opt.Load(n, subDir+"/opt"); err != nil {
				return nil, errors.Wrapf(err, "Can't load network, failed to load Optimizer of node %q\n", nf.name)
			}
		}
	}

	return net, nil
}
